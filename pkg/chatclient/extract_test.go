package chatclient

import (
	"errors"
	"testing"
)

func TestExtractReply(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"string content", `{"choices":[{"message":{"content":"hello"}}]}`, "hello"},
		{"text parts", `{"choices":[{"message":{"content":[{"type":"text","text":"hel"},{"type":"image_url","image_url":{}},{"type":"text","text":"lo"}]}}]}`, "hello"},
		{"no choices", `{"choices":[]}`, ""},
		{"null content", `{"choices":[{"message":{"content":null}}]}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractReply([]byte(tc.body))
			if err != nil {
				t.Fatalf("ExtractReply() error = %v", err)
			}
			if got.Text != tc.want {
				t.Errorf("Text = %q, want %q", got.Text, tc.want)
			}
		})
	}

	if _, err := ExtractReply([]byte("not json")); err == nil {
		t.Error("expected decode error")
	}
}

func TestNormalizeError(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"TypeError: Failed to fetch", "Failed to fetch"},
		{"  Upstream service unavailable  ", "Upstream service unavailable"},
		{"", fallbackErrorMessage},
		{"TypeError: ", fallbackErrorMessage},
		{"see https://status.example.com", "see https://status.example.com"},
	}
	for _, tc := range cases {
		if got := NormalizeError(errors.New(tc.in)); got != tc.want {
			t.Errorf("NormalizeError(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if NormalizeError(nil) != "" {
		t.Error("nil error should normalize to empty string")
	}
}

func TestNewAPIError(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   string
	}{
		{401, `{"error":{"message":"Unauthorized","code":40101},"requestID":"x"}`, "Unauthorized"},
		{429, `{"error":{"message":"Rate limit reached","type":"requests"}}`, "Rate limit reached"},
		{400, `{"error":"bad input"}`, "bad input"},
		{502, `<html>bad gateway</html>`, "Bad Gateway"},
	}
	for _, tc := range cases {
		got := newAPIError(tc.status, []byte(tc.body))
		if got.Message != tc.want || got.StatusCode != tc.status {
			t.Errorf("newAPIError(%d, %s) = %+v", tc.status, tc.body, got)
		}
	}
}
