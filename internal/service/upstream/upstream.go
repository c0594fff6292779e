package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"voxrelay/internal/core"
	cErr "voxrelay/internal/pkg/error"
	"voxrelay/internal/telemetry"

	"github.com/google/wire"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewForwarder)

// Request 一次上游呼叫
type Request struct {
	Endpoint    core.Endpoint
	URL         string
	APIKey      string
	ContentType string
	Body        io.Reader
}

// Response 已解壓的上游 2xx 回應
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Forwarder 每個入站請求只送出一次，不重試
type Forwarder struct {
	httpClient *http.Client
	trace      *telemetry.Trace
	metric     *telemetry.Metric
	logger     *zap.Logger
}

func NewForwarder(
	client *http.Client,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	logger *zap.Logger,
) *Forwarder {
	return &Forwarder{
		httpClient: client,
		trace:      trace,
		metric:     metric,
		logger:     logger,
	}
}

// Do 送出請求；非 2xx 回傳 UpstreamError，連線失敗回傳 NetworkError
func (forwarder *Forwarder) Do(ctx context.Context, req Request) (_ *Response, returnedError error) {
	ctx, span, end := forwarder.trace.WithSpan(ctx, "upstream."+string(req.Endpoint))
	defer func() { end(returnedError) }()

	meta := core.TraceUpstreamMeta{
		Provider: string(core.ProviderOpenAI),
		Endpoint: string(req.Endpoint),
		URL:      req.URL,
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, req.Body)
	if err != nil {
		return nil, cErr.InternalServer("create upstream request failed")
	}
	httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)
	httpReq.Header.Set("Accept", "application/json")
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}

	resp, err := forwarder.httpClient.Do(httpReq)
	if err != nil {
		forwarder.trace.ApplyTraceAttributes(span, meta)
		forwarder.metric.ObserveUpstream(req.Endpoint, "network_error")
		forwarder.logger.Error("upstream request failed",
			zap.String("endpoint", string(req.Endpoint)),
			zap.Error(err),
		)
		return nil, cErr.NetworkError()
	}
	defer resp.Body.Close()

	meta.StatusCode = resp.StatusCode
	forwarder.trace.ApplyTraceAttributes(span, meta)
	forwarder.metric.ObserveUpstream(req.Endpoint, strconv.Itoa(resp.StatusCode))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		forwarder.logger.Error("read upstream body failed", zap.Error(err))
		return nil, cErr.NetworkError()
	}
	body, err := decompressOnly(raw, resp.Header)
	if err != nil {
		forwarder.logger.Warn("decompress upstream body failed", zap.Error(err))
		body = raw
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		forwarder.logger.Warn("upstream returned error status",
			zap.String("endpoint", string(req.Endpoint)),
			zap.Int("status", resp.StatusCode),
		)
		return nil, cErr.UpstreamError(resp.StatusCode, ErrorBody(resp.StatusCode, body))
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        body,
	}, nil
}

type errorEnvelope struct {
	Error errorMessage `json:"error"`
}

type errorMessage struct {
	Message string `json:"message"`
}

// ErrorBody JSON 原樣回傳；其他內容包成 {"error":{"message":...}}
func ErrorBody(status int, body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && json.Valid(trimmed) {
		return trimmed
	}
	message := strings.TrimSpace(string(trimmed))
	if message == "" {
		message = http.StatusText(status)
	}
	if message == "" {
		message = "Upstream request failed"
	}
	wrapped, _ := json.Marshal(errorEnvelope{Error: errorMessage{Message: message}})
	return wrapped
}
