package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"voxrelay/config"
	"voxrelay/internal/core"
	cErr "voxrelay/internal/pkg/error"
	"voxrelay/internal/service/upstream"
	"voxrelay/internal/telemetry"

	"go.opentelemetry.io/otel/attribute"
)

const verboseJSON = "verbose_json"

type OpenAIService struct {
	forwarder *upstream.Forwarder
	trace     *telemetry.Trace
	config    *config.Configuration
}

func NewOpenAIService(
	trace *telemetry.Trace,
	forwarder *upstream.Forwarder,
	config *config.Configuration,
) Service {
	return &OpenAIService{forwarder: forwarder, trace: trace, config: config}
}

// AudioTranscriptionsV1 重新組裝 multipart 後呼叫 OpenAI /audio/transcriptions。
// 失敗分類：
//   - 本地組裝失敗：InternalServer
//   - 對外請求/非 2xx：NetworkError、UpstreamError
//   - 回應解析失敗：ExternalResponseFormatError
func (s *OpenAIService) AudioTranscriptionsV1(ctx context.Context, upload *Upload, opts Options, apiKey string) (*TranscriptionResult, error) {
	model := s.config.OpenAI.TranscriptionModelOrDefault()
	ctx, span, end := s.trace.WithSpan(ctx, "openai.audio.transcriptions")
	defer end(nil)

	span.SetAttributes(
		attribute.String("ai.provider", string(core.ProviderOpenAI)),
		attribute.String("ai.model", model),
	)
	s.trace.ApplyTraceAttributes(span, core.TraceUploadMeta{
		Filename: upload.Filename,
		MimeType: upload.MimeType,
		Size:     upload.Size,
		Rebuilt:  upload.Rebuilt,
	})

	body, contentType, err := s.buildForm(upload, model, opts)
	if err != nil {
		end(err)
		return nil, err
	}

	resp, err := s.forwarder.Do(ctx, upstream.Request{
		Endpoint:    core.EndpointTranscribe,
		URL:         s.config.OpenAI.Endpoint(string(core.OpenAITranscriptionEndpoint)),
		APIKey:      apiKey,
		ContentType: contentType,
		Body:        body,
	})
	if err != nil {
		end(err)
		return nil, err
	}

	result, err := ShapeTranscription(resp.Body)
	if err != nil {
		end(err)
		return nil, err
	}
	return result, nil
}

// buildForm 每次都用新的 boundary 組裝，不沿用入站 body
func (s *OpenAIService) buildForm(upload *Upload, model string, opts Options) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	audioFile, err := upload.Open()
	if err != nil {
		return nil, "", cErr.InternalServer("open audio file failed")
	}
	defer audioFile.Close()

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(upload.Filename)))
	partHeader.Set("Content-Type", upload.MimeType)
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		return nil, "", cErr.InternalServer("create form file failed")
	}
	if _, err := io.Copy(part, audioFile); err != nil {
		return nil, "", cErr.InternalServer("copy audio file failed")
	}

	fields := [][2]string{
		{"model", model},
		{"response_format", verboseJSON},
		{"language", strings.TrimSpace(opts.Language)},
		{"prompt", strings.TrimSpace(opts.Prompt)},
		{"temperature", strings.TrimSpace(opts.Temperature)},
	}
	for _, field := range fields {
		if field[1] == "" {
			continue
		}
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return nil, "", cErr.InternalServer("write " + field[0] + " field failed")
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", cErr.InternalServer("close multipart writer failed")
	}
	return &buf, writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")
