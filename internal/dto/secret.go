package dto

import (
	"time"

	"voxrelay/internal/core"
	"voxrelay/internal/pkg/request"
)

// StoredSecret 金鑰儲存格式（檔案與 mongo 共用）
type StoredSecret struct {
	APIKey    string    `json:"apiKey" bson:"apiKey"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ResolvedSecret 目前生效的金鑰；Key 為空代表未設定
type ResolvedSecret struct {
	Key       string
	Source    core.SecretSource
	UpdatedAt *time.Time
}

func (r ResolvedSecret) Configured() bool {
	return r.Key != ""
}

// UpdateSecretDto POST /api/openai-settings
type UpdateSecretDto struct {
	APIKey string `json:"apiKey" form:"apiKey" validate:"required"`
}

func (UpdateSecretDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"APIKey.required": "apiKey is required",
	}
}

// SettingsView GET/POST/DELETE /api/openai-settings 回應
type SettingsView struct {
	Configured bool    `json:"configured"`
	Source     *string `json:"source"`
	Preview    string  `json:"preview,omitempty"`
	UpdatedAt  string  `json:"updatedAt,omitempty"`
}

// StatusPayload GET /api/status 回應
type StatusPayload struct {
	OpenAIConfigured bool    `json:"openaiConfigured"`
	Source           *string `json:"source"`
	Message          string  `json:"message"`
	Timestamp        string  `json:"timestamp"`
}

// SourcePointer 無來源時輸出 JSON null
func SourcePointer(source core.SecretSource) *string {
	if source == core.SecretSourceNone {
		return nil
	}
	s := string(source)
	return &s
}
