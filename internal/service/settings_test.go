package service

import (
	"net/http"
	"testing"
)

func TestParseSettingsUpdate(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        string
	}{
		{"json", "application/json", `{"apiKey":"  sk-abc  "}`, "sk-abc"},
		{"json without header", "", `{"apiKey":"sk-abc"}`, "sk-abc"},
		{"json missing key", "application/json", `{}`, ""},
		{"json wrong type", "application/json", `{"apiKey":42}`, ""},
		{"invalid json", "application/json", `{"apiKey":`, ""},
		{"urlencoded", "application/x-www-form-urlencoded", "apiKey=sk-form", "sk-form"},
		{"plain apiKey pair", "text/plain", "apiKey=sk-pair", "sk-pair"},
		{"plain raw key", "text/plain", "  sk-raw \n", "sk-raw"},
		{"empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSettingsUpdate(tt.contentType, []byte(tt.body))
			if got.APIKey != tt.want {
				t.Errorf("APIKey = %q, want %q", got.APIKey, tt.want)
			}
		})
	}
}

func TestValidateSettingsUpdate(t *testing.T) {
	err := ValidateSettingsUpdate(ParseSettingsUpdate("application/json", []byte(`{}`)))
	if err == nil || err.HttpCode() != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if err.ErrorDesc() != "apiKey is required" {
		t.Errorf("desc = %q", err.ErrorDesc())
	}
	if err := ValidateSettingsUpdate(ParseSettingsUpdate("application/json", []byte(`{"apiKey":"sk"}`))); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}
