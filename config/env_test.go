package config

import (
	"testing"

	"github.com/spf13/viper"
)

func loadFromEnv(t *testing.T) Configuration {
	t.Helper()
	v := viper.NewWithOptions(viper.KeyDelimiter("__"))
	BindEnvs(v)
	var got Configuration
	if err := v.Unmarshal(&got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	return got
}

func TestBindEnvs_Aliases(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-flat")
	t.Setenv("OPENAI__CHAT_MODEL", "gpt-test")
	t.Setenv("TRANSCRIBE_PROXY_TOKEN", "second-alias")
	t.Setenv("CHAT_ALLOWED_ORIGIN", "https://app.example.com")
	t.Setenv("GUARD__TRANSCRIBE", "required")

	got := loadFromEnv(t)
	if got.OpenAI.APIKey != "sk-flat" {
		t.Errorf("APIKey = %q", got.OpenAI.APIKey)
	}
	if got.OpenAI.ChatModel != "gpt-test" {
		t.Errorf("ChatModel = %q", got.OpenAI.ChatModel)
	}
	if got.OpenAI.ProxyToken != "second-alias" {
		t.Errorf("ProxyToken = %q", got.OpenAI.ProxyToken)
	}
	if got.Cors.ChatOrigin != "https://app.example.com" {
		t.Errorf("ChatOrigin = %q", got.Cors.ChatOrigin)
	}
	if got.Guard.Transcribe != "required" {
		t.Errorf("Guard.Transcribe = %q", got.Guard.Transcribe)
	}
}

func TestBindEnvs_CanonicalWins(t *testing.T) {
	t.Setenv("OPENAI__API_KEY", "sk-canonical")
	t.Setenv("OPENAI_API_KEY", "sk-flat")

	if got := loadFromEnv(t); got.OpenAI.APIKey != "sk-canonical" {
		t.Errorf("APIKey = %q, want canonical value", got.OpenAI.APIKey)
	}
}

func TestStorageFilePath(t *testing.T) {
	cases := []struct {
		storage Storage
		want    string
	}{
		{Storage{}, "data/openai-key.json"},
		{Storage{Dir: "/var/lib/voxrelay"}, "/var/lib/voxrelay/openai-key.json"},
		{Storage{Dir: "/var/lib/voxrelay", File: "/etc/key.json"}, "/etc/key.json"},
		{Storage{File: "custom.json"}, "data/custom.json"},
	}
	for _, tc := range cases {
		if got := tc.storage.FilePath(); got != tc.want {
			t.Errorf("FilePath(%+v) = %q, want %q", tc.storage, got, tc.want)
		}
	}
}

func TestCorsOriginDefaults(t *testing.T) {
	c := Cors{SettingsOrigin: " https://admin.example.com "}
	if got := c.Origin("settings"); got != "https://admin.example.com" {
		t.Errorf("settings origin = %q", got)
	}
	if got := c.Origin("chat"); got != "*" {
		t.Errorf("chat origin = %q, want *", got)
	}
}
