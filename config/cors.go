package config

import "strings"

type Cors struct {
	ChatOrigin       string `mapstructure:"CHAT_ORIGIN" env:"CHAT_ALLOWED_ORIGIN" json:"chat_origin" yaml:"chat_origin"`
	TranscribeOrigin string `mapstructure:"TRANSCRIBE_ORIGIN" env:"TRANSCRIBE_ALLOWED_ORIGIN" json:"transcribe_origin" yaml:"transcribe_origin"`
	StatusOrigin     string `mapstructure:"STATUS_ORIGIN" env:"STATUS_ALLOWED_ORIGIN" json:"status_origin" yaml:"status_origin"`
	SettingsOrigin   string `mapstructure:"SETTINGS_ORIGIN" env:"OPENAI_SETTINGS_ALLOWED_ORIGIN" json:"settings_origin" yaml:"settings_origin"`
}

// Origin 依端點取得允許的來源，未設定時為 "*"
func (c Cors) Origin(endpoint string) string {
	var origin string
	switch endpoint {
	case "chat":
		origin = c.ChatOrigin
	case "transcribe":
		origin = c.TranscribeOrigin
	case "status":
		origin = c.StatusOrigin
	case "settings":
		origin = c.SettingsOrigin
	}
	if origin = strings.TrimSpace(origin); origin == "" {
		return "*"
	}
	return origin
}
