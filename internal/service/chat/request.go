package chat

import (
	"bytes"
	"encoding/json"
	"math"

	cErr "voxrelay/internal/pkg/error"
)

const messagesNotArray = `"messages" must be an array`

// NormalizeRequest 驗證 messages 為陣列，其他欄位型別不符時直接忽略
func NormalizeRequest(body []byte) (*Request, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, cErr.ValidateErr(messagesNotArray)
	}

	messages := bytes.TrimSpace(fields["messages"])
	if len(messages) == 0 || messages[0] != '[' {
		return nil, cErr.ValidateErr(messagesNotArray)
	}

	req := &Request{Messages: messages}
	if f, ok := number(fields["temperature"]); ok {
		req.Temperature = &f
	}
	if f, ok := number(fields["max_tokens"]); ok && f == math.Trunc(f) && f >= 0 && f <= math.MaxInt32 {
		n := int64(f)
		req.MaxTokens = &n
	}
	if rf := bytes.TrimSpace(fields["response_format"]); len(rf) > 0 && rf[0] == '{' {
		req.ResponseFormat = rf
	}
	return req, nil
}

// BuildPayload 固定 model，未給溫度時套用預設值
func BuildPayload(req *Request, model string, defaultTemperature float64) ChatPayload {
	temperature := defaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	return ChatPayload{
		Model:          model,
		Messages:       req.Messages,
		Temperature:    temperature,
		MaxTokens:      req.MaxTokens,
		ResponseFormat: req.ResponseFormat,
	}
}

func number(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
