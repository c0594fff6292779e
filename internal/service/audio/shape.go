package audio

import (
	"encoding/json"
	"strings"

	"voxrelay/internal/core"
	cErr "voxrelay/internal/pkg/error"
)

type verboseTranscription struct {
	Text     any              `json:"text"`
	Duration any              `json:"duration"`
	Language any              `json:"language"`
	Segments []map[string]any `json:"segments"`
}

// ShapeTranscription 將 verbose_json 轉成 {text, duration, language}
func ShapeTranscription(body []byte) (*TranscriptionResult, error) {
	var raw verboseTranscription
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, cErr.ExternalResponseFormatError("Transcription response was not valid JSON.")
	}

	result := &TranscriptionResult{Text: core.NoSpeechDetectedText}
	if text := extractText(raw); text != "" {
		result.Text = text
	}
	if duration, ok := raw.Duration.(float64); ok {
		result.Duration = &duration
	}
	if language, ok := raw.Language.(string); ok && strings.TrimSpace(language) != "" {
		language = strings.TrimSpace(language)
		result.Language = &language
	}
	return result, nil
}

func extractText(raw verboseTranscription) string {
	if text, ok := raw.Text.(string); ok {
		if text = strings.TrimSpace(text); text != "" {
			return text
		}
	}
	parts := make([]string, 0, len(raw.Segments))
	for _, segment := range raw.Segments {
		text, _ := segment["text"].(string)
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
