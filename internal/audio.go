package internal

import "strings"

// AudioToolName identifies the orchestrator's audio-synthesis tool. The
// spelling is the orchestrator's, not ours.
const AudioToolName = "speach_agent"

// audioPathMarker precedes the artifact path in the tool's result text.
const audioPathMarker = "saved at"

// audioExtensions lists the artifact extensions the client recognizes.
var audioExtensions = []string{".mp3", ".wav"}

// ExtractAudioPath pulls an audio artifact path out of a tool result string
// of the form "... saved at `output/audio/reply.mp3` ...". It returns ""
// when the marker, the path, or a known extension is missing; malformed
// results are never an error, the reply simply has no audio.
func ExtractAudioPath(result string) string {
	idx := strings.Index(result, audioPathMarker)
	if idx < 0 {
		return ""
	}

	raw := result[idx+len(audioPathMarker):]
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, "`", "")

	for _, ext := range audioExtensions {
		if i := strings.Index(raw, ext); i >= 0 {
			return raw[:i+len(ext)]
		}
	}
	return ""
}

// ScanEventsForAudio walks an event batch and returns the path of the last
// audio artifact produced by the audio-synthesis tool, or "".
func ScanEventsForAudio(events []Event) string {
	audioPath := ""
	for _, event := range events {
		if event.Content == nil {
			continue
		}
		for _, part := range event.Content.Parts {
			fr := part.FunctionResponse
			if fr == nil || fr.Name != AudioToolName || fr.Response == nil {
				continue
			}
			if p := ExtractAudioPath(fr.Response.Result); p != "" {
				audioPath = p
			}
		}
	}
	return audioPath
}
