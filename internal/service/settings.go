package service

import (
	"bytes"
	"encoding/json"
	"mime"
	"net/url"
	"strings"

	"voxrelay/internal/dto"
	cErr "voxrelay/internal/pkg/error"
	"voxrelay/internal/pkg/request"
)

// ParseSettingsUpdate 接受 JSON、urlencoded 或純文字；解析失敗視為空請求
func ParseSettingsUpdate(contentType string, body []byte) dto.UpdateSecretDto {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	trimmed := bytes.TrimSpace(body)

	switch {
	case mediaType == "application/json" || bytes.HasPrefix(trimmed, []byte("{")):
		var fields map[string]any
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return dto.UpdateSecretDto{}
		}
		key, _ := fields["apiKey"].(string)
		return dto.UpdateSecretDto{APIKey: strings.TrimSpace(key)}
	case mediaType == "application/x-www-form-urlencoded" || bytes.Contains(trimmed, []byte("apiKey=")):
		values, err := url.ParseQuery(string(trimmed))
		if err != nil {
			return dto.UpdateSecretDto{}
		}
		return dto.UpdateSecretDto{APIKey: strings.TrimSpace(values.Get("apiKey"))}
	default:
		return dto.UpdateSecretDto{APIKey: string(trimmed)}
	}
}

// ValidateSettingsUpdate apiKey 必填
func ValidateSettingsUpdate(update dto.UpdateSecretDto) *cErr.Error {
	return request.Validate(update)
}
