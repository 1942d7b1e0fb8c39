package internal

import "testing"

func TestExtractAudioPath(t *testing.T) {
	tests := []struct {
		name   string
		result string
		want   string
	}{
		{
			name:   "backtick-quoted mp3 path",
			result: "Audio saved at `foo/bar.mp3`",
			want:   "foo/bar.mp3",
		},
		{
			name:   "trailing commentary after the path",
			result: "Your summary was saved at `output/reply.mp3` and is ready.",
			want:   "output/reply.mp3",
		},
		{
			name:   "wav artifact",
			result: "saved at `clips/note.wav`",
			want:   "clips/note.wav",
		},
		{
			name:   "missing marker yields nothing",
			result: "The file is at foo/bar.mp3",
			want:   "",
		},
		{
			name:   "marker without a recognized extension",
			result: "saved at `foo/bar.txt`",
			want:   "",
		},
		{
			name:   "empty result",
			result: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractAudioPath(tt.result); got != tt.want {
				t.Errorf("ExtractAudioPath(%q) = %q, want %q", tt.result, got, tt.want)
			}
		})
	}
}

func TestScanEventsForAudio(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   string
	}{
		{
			name:   "no events",
			events: nil,
			want:   "",
		},
		{
			name: "audio tool response",
			events: []Event{
				CreateTestEvent("model", "Here is your answer."),
				CreateTestToolEvent(AudioToolName, "saved at `audio/reply.mp3`"),
			},
			want: "audio/reply.mp3",
		},
		{
			name: "other tools are ignored",
			events: []Event{
				CreateTestToolEvent("market_data_agent", "saved at `data/quotes.mp3`"),
			},
			want: "",
		},
		{
			name: "last audio artifact wins",
			events: []Event{
				CreateTestToolEvent(AudioToolName, "saved at `audio/first.mp3`"),
				CreateTestToolEvent(AudioToolName, "saved at `audio/second.mp3`"),
			},
			want: "audio/second.mp3",
		},
		{
			name: "malformed result is absorbed",
			events: []Event{
				CreateTestToolEvent(AudioToolName, "something went sideways"),
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScanEventsForAudio(tt.events); got != tt.want {
				t.Errorf("ScanEventsForAudio() = %q, want %q", got, tt.want)
			}
		})
	}
}
