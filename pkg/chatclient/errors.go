package chatclient

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
)

const fallbackErrorMessage = "Something went wrong. Please try again."

var (
	ErrClosed           = errors.New("chatclient: conversation closed")
	ErrEmptyMessage     = errors.New("chatclient: message is empty")
	ErrAlreadyRecording = errors.New("chatclient: already recording")
	ErrNotRecording     = errors.New("chatclient: not recording")
	ErrNoSpeech         = errors.New("chatclient: no speech detected")
)

// APIError 非 2xx 回應；Message 取自 {"error":{"message"}}
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: body}
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Error) > 0 {
		var detail struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &detail); err == nil {
			apiErr.Message = strings.TrimSpace(detail.Message)
		} else {
			// {"error":"..."} 形式
			var text string
			if json.Unmarshal(envelope.Error, &text) == nil {
				apiErr.Message = strings.TrimSpace(text)
			}
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// 開頭的 "TypeError: " 這類前綴
var errorPrefix = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*:(?:\s+|$)`)

// NormalizeError 轉成可以直接顯示給使用者的訊息
func NormalizeError(err error) string {
	if err == nil {
		return ""
	}
	return normalizeMessage(err.Error())
}

func normalizeMessage(message string) string {
	message = strings.TrimSpace(message)
	message = strings.TrimSpace(errorPrefix.ReplaceAllString(message, ""))
	if message == "" {
		return fallbackErrorMessage
	}
	return message
}
