package chat

import (
	"bytes"
	"context"
	"encoding/json"

	"voxrelay/config"
	"voxrelay/internal/core"
	cErr "voxrelay/internal/pkg/error"
	"voxrelay/internal/service/upstream"
	"voxrelay/internal/telemetry"

	"go.opentelemetry.io/otel/attribute"
)

type OpenAIService struct {
	forwarder *upstream.Forwarder
	trace     *telemetry.Trace
	config    *config.Configuration
}

// NewOpenAIService 建立 OpenAIService
func NewOpenAIService(
	trace *telemetry.Trace,
	forwarder *upstream.Forwarder,
	config *config.Configuration,
) Service {
	return &OpenAIService{forwarder: forwarder, trace: trace, config: config}
}

// ChatCompletionsV1 呼叫 OpenAI Chat Completions。
// 失敗時依錯誤類型回傳：
//   - 本地序列化失敗：InternalServer
//   - 連線失敗：NetworkError
//   - 對方非 2xx：UpstreamError（狀態碼與 body 原樣轉出）
func (s *OpenAIService) ChatCompletionsV1(ctx context.Context, req *Request, apiKey string) (*ChatResult, error) {
	model := s.config.OpenAI.ChatModelOrDefault()
	ctx, span, end := s.trace.WithSpan(ctx, "openai.chat.completions")
	defer end(nil)

	span.SetAttributes(
		attribute.String("ai.provider", string(core.ProviderOpenAI)),
		attribute.String("ai.model", model),
	)

	payload, err := json.Marshal(BuildPayload(req, model, core.DefaultChatTemperature))
	if err != nil {
		end(err)
		return nil, cErr.InternalServer("marshal chat payload failed")
	}

	resp, err := s.forwarder.Do(ctx, upstream.Request{
		Endpoint:    core.EndpointChat,
		URL:         s.config.OpenAI.Endpoint(string(core.OpenAIChatEndpoint)),
		APIKey:      apiKey,
		ContentType: "application/json",
		Body:        bytes.NewReader(payload),
	})
	if err != nil {
		end(err)
		return nil, err
	}
	return &ChatResult{ContentType: resp.ContentType, Body: resp.Body}, nil
}
