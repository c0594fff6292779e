package config

import "strings"

const (
	DefaultOpenAIBaseURL      = "https://api.openai.com/v1"
	DefaultChatModel          = "gpt-4o-mini"
	DefaultTranscriptionModel = "whisper-1"
)

type OpenAI struct {
	// 環境變數提供的金鑰，優先於儲存的金鑰
	APIKey string `mapstructure:"API_KEY" env:"OPENAI_API_KEY" json:"-" yaml:"api_key"`
	// 前端呼叫轉錄/設定時需附帶的共享 token
	ProxyToken         string `mapstructure:"PROXY_TOKEN" env:"OPENAI_PROXY_TOKEN,TRANSCRIBE_PROXY_TOKEN,PROXY_TOKEN" json:"-" yaml:"proxy_token"`
	BaseURL            string `mapstructure:"BASE_URL" json:"base_url" yaml:"base_url"`
	ChatModel          string `mapstructure:"CHAT_MODEL" json:"chat_model" yaml:"chat_model"`
	TranscriptionModel string `mapstructure:"TRANSCRIPTION_MODEL" json:"transcription_model" yaml:"transcription_model"`
}

func (o OpenAI) Endpoint(path string) string {
	base := strings.TrimRight(strings.TrimSpace(o.BaseURL), "/")
	if base == "" {
		base = DefaultOpenAIBaseURL
	}
	return base + "/" + strings.TrimLeft(path, "/")
}

func (o OpenAI) ChatModelOrDefault() string {
	if m := strings.TrimSpace(o.ChatModel); m != "" {
		return m
	}
	return DefaultChatModel
}

func (o OpenAI) TranscriptionModelOrDefault() string {
	if m := strings.TrimSpace(o.TranscriptionModel); m != "" {
		return m
	}
	return DefaultTranscriptionModel
}
