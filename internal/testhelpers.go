package internal

// Shared fixtures for tests in this package and cmd.

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// CreateTestEvent creates an event with a single text part.
func CreateTestEvent(role, text string) Event {
	return Event{
		Content: &EventContent{
			Role:  role,
			Parts: []Part{{Text: StringPtr(text)}},
		},
	}
}

// CreateTestTextlessEvent creates an event whose parts carry no text.
func CreateTestTextlessEvent(role string) Event {
	return Event{
		Content: &EventContent{
			Role:  role,
			Parts: []Part{{}},
		},
	}
}

// CreateTestToolEvent creates an event holding a function response.
func CreateTestToolEvent(name, result string) Event {
	return Event{
		Content: &EventContent{
			Role: RoleModel,
			Parts: []Part{{
				FunctionResponse: &FunctionResponse{
					Name:     name,
					Response: &FunctionResult{Result: result},
				},
			}},
		},
	}
}

// CreateTestSession creates a session list entry.
func CreateTestSession(id string, lastUpdate float64) Session {
	return Session{
		ID:             id,
		AppName:        DefaultAppName,
		UserID:         "user-test",
		LastUpdateTime: lastUpdate,
	}
}
