package chat

import (
	"context"
	"encoding/json"
)

// Request 正規化後的 /api/chat 請求；Messages 保留原始 JSON
type Request struct {
	Messages       json.RawMessage
	Temperature    *float64
	MaxTokens      *int64
	ResponseFormat json.RawMessage
}

// ChatPayload 實際送往上游的 body
type ChatPayload struct {
	Model          string          `json:"model"`
	Messages       json.RawMessage `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      *int64          `json:"max_tokens,omitempty"`
	ResponseFormat json.RawMessage `json:"response_format,omitempty"`
}

// ChatResult 上游回應原樣轉出
type ChatResult struct {
	ContentType string
	Body        []byte
}

type Service interface {
	ChatCompletionsV1(ctx context.Context, req *Request, apiKey string) (*ChatResult, error)
}

// ChatRequestDoc 僅供 API 文件使用
type ChatRequestDoc struct {
	Messages       []map[string]any `json:"messages"`
	Temperature    *float64         `json:"temperature,omitempty"`
	MaxTokens      *int             `json:"max_tokens,omitempty"`
	ResponseFormat map[string]any   `json:"response_format,omitempty"`
}
