package internal

import "fmt"

// EventsToMessages flattens a session's event log into the ordered message
// list the UI renders. It is pure and never fails: events without content,
// without parts, or with a role other than "user"/"model" are skipped.
//
// The first part carrying a text field wins; an event whose parts carry no
// text at all still produces a message with nil content, because "no text"
// is a valid state of a model turn (for example a pure tool invocation).
// Function responses are deliberately not interpreted here: audio artifacts
// referenced by old turns are not guaranteed to still exist when history is
// replayed.
func EventsToMessages(events []Event) []Message {
	var messages []Message
	nextID := 1

	for _, event := range events {
		if event.Content == nil || len(event.Content.Parts) == 0 {
			continue
		}

		role := event.Content.Role
		if role != RoleUser && role != RoleModel {
			continue
		}

		var text *string
		for _, part := range event.Content.Parts {
			if part.Text != nil {
				text = part.Text
				break
			}
		}

		outRole := RoleUser
		if role == RoleModel {
			outRole = RoleAssistant
		}

		messages = append(messages, Message{
			ID:      fmt.Sprintf("msg-%d", nextID),
			Role:    outRole,
			Content: text,
		})
		nextID++
	}

	return messages
}
