package audio

import (
	"context"
)

// Options 轉錄時一併轉送的選填欄位
type Options struct {
	Language    string
	Prompt      string
	Temperature string
}

// TranscriptionResult /api/transcribe 對外固定格式
type TranscriptionResult struct {
	Text     string   `json:"text"`
	Duration *float64 `json:"duration"`
	Language *string  `json:"language"`
}

type Service interface {
	AudioTranscriptionsV1(ctx context.Context, upload *Upload, opts Options, apiKey string) (*TranscriptionResult, error)
}
