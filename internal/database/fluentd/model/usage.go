package model

type AIUsageLog struct {
	// 身份/追蹤
	RequestID        string  `bson:"request_id,omitempty" json:"request_id"`
	ProjectName      string  `bson:"project_name,omitempty" json:"project_name,omitempty"`
	Provider         string  `bson:"provider" json:"provider"`
	Model            string  `bson:"model,omitempty" json:"model,omitempty"`
	Endpoint         string  `bson:"endpoint" json:"endpoint"`
	KeySource        string  `bson:"key_source,omitempty" json:"key_source,omitempty"`
	StatusCode       int     `bson:"status_code" json:"status_code"`
	TokensPrompt     int     `bson:"tokens_prompt,omitempty" json:"tokens_prompt,omitempty"`
	TokensCompletion int     `bson:"tokens_completion,omitempty" json:"tokens_completion,omitempty"`
	TokensTotal      int     `bson:"tokens_total,omitempty" json:"tokens_total,omitempty"`
	AudioBytes       int64   `bson:"audio_bytes,omitempty" json:"audio_bytes,omitempty"`
	AudioSeconds     float64 `bson:"audio_seconds,omitempty" json:"audio_seconds,omitempty"`
	Version          string  `bson:"version" json:"version"`
	LoggedAt         string  `bson:"logged_at" json:"logged_at"`
}
