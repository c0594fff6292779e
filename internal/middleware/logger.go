package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"voxrelay/config"
	"voxrelay/internal/core"
	"voxrelay/internal/database/fluentd/model"
	"voxrelay/internal/database/fluentd/repository"
	"voxrelay/internal/pkg/request"
	"voxrelay/internal/telemetry"
	"voxrelay/utils/proxytoken"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	redacted       = "[REDACTED]"
	bodyPreviewMax = 2000
)

// 含有憑證的 header 一律遮蔽
var sensitiveHeaders = map[string]struct{}{
	"authorization":                        {},
	strings.ToLower(proxytoken.HeaderName): {},
	"cookie":                               {},
}

// 這些路徑的 body 內含金鑰，不記錄內容
var sensitiveBodyPaths = map[string]struct{}{
	"/api/openai-settings": {},
}

type Logger struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewLogger(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Logger {
	return &Logger{
		logger:            logger,
		trace:             trace,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

// LoggerHandler 記錄每個請求的詳細資訊（避免讀取二進位 body；文字 body 做安全截斷與 UTF-8 處理）
func (m *Logger) LoggerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if skipObservability(endpoint) {
			c.Next()
			return
		}

		ctx, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanLoggerMiddleware))

		requestTime := time.Now().UTC()
		if startTime, exists := c.Get("requestDuration"); exists {
			if t, ok := startTime.(time.Time); ok {
				requestTime = t
			}
		}

		// ===== 判斷 content-type，二進位不讀 body =====
		mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
		bodyRaw := m.readBody(c, endpoint, mediaType)

		method := c.Request.Method
		path := c.Request.URL.Path
		query := redactQuery(c.Request.URL.RawQuery)
		traceID := span.SpanContext().TraceID()
		spanID := span.SpanContext().SpanID()

		// headers → map[string]string（lowercase key）
		headerMap := make(map[string]string, len(c.Request.Header))
		for k, v := range c.Request.Header {
			lk := strings.ToLower(k)
			if _, secret := sensitiveHeaders[lk]; secret {
				headerMap[lk] = redacted
				continue
			}
			headerMap[lk] = strings.Join(v, ",")
		}

		meta := core.LoggerRequestMeta{
			Method:     method,
			Path:       path,
			FullPath:   endpoint,
			Query:      query,
			Body:       bodyRaw,
			Scheme:     c.Request.URL.Scheme,
			Host:       c.Request.Host,
			UserAgent:  c.Request.UserAgent(),
			ContentLen: c.Request.ContentLength,
			Proto:      c.Request.Proto,
			ClientIP:   c.ClientIP(),
			Headers:    headerMap,
		}
		m.trace.ApplyTraceAttributes(span, meta)

		logFields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Any("headers", headerMap),
		}
		if query != "" {
			logFields = append(logFields, zap.String("query", query))
		}
		if bodyRaw != "" {
			logFields = append(logFields, zap.String("body", bodyRaw))
		}
		logFields = append(logFields, zap.String("requestId", request.ID(c)))
		logFields = append(logFields, zap.String("spanId", fmt.Sprintf("%x", spanID[:])))
		logFields = append(logFields, zap.String("traceId", fmt.Sprintf("%x", traceID[:])))

		m.logger.Info("[Request] logging middleware message", logFields...)

		if err := m.fluentdRepository.LogRequest(ctx, model.RequestLog{
			RequestID:   request.ID(c),
			Method:      method,
			Path:        path,
			ProjectName: m.config.App.Name,
			RequestTS:   requestTime.Format(repository.LogTimeLayout),
			Body:        bodyRaw,
			IPHash:      hashIP(c.ClientIP()),
			UserAgent:   c.Request.UserAgent(),
		}); err != nil {
			m.logger.Warn("send request log failed", zap.Error(err))
		}
		end(nil)
		c.Next()
	}
}

func (m *Logger) readBody(c *gin.Context, endpoint, mediaType string) string {
	if _, secret := sensitiveBodyPaths[endpoint]; secret {
		if c.Request.ContentLength != 0 && c.Request.Body != nil {
			return redacted
		}
		return ""
	}
	if isBinaryContent(mediaType) {
		// 二進位內容不讀 body，提供簡短標記
		if c.Request.ContentLength > 0 {
			return fmt.Sprintf("(binary %s, %d bytes)", mediaType, c.Request.ContentLength)
		}
		return fmt.Sprintf("(binary %s)", mediaType)
	}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return ""
	}
	// 讀完整 body 後回填，確保下游仍可讀取
	data, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(data))
	return toSafePreview(data, bodyPreviewMax)
}

// 僅對文字內容做安全預覽：UTF-8 直接截斷；非 UTF-8 以 Base64 表示
func toSafePreview(b []byte, max int) string {
	if len(b) == 0 {
		return ""
	}
	if utf8.Valid(b) {
		if len(b) > max {
			return string(b[:max]) + "…"
		}
		return string(b)
	}
	// 非 UTF-8 -> base64（先截斷，避免輸出過大）
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

// 是否為二進位內容（不讀 body）
func isBinaryContent(mediaType string) bool {
	return strings.HasPrefix(mediaType, "multipart/") ||
		strings.HasPrefix(mediaType, "image/") ||
		strings.HasPrefix(mediaType, "audio/") ||
		strings.HasPrefix(mediaType, "video/") ||
		mediaType == "application/octet-stream"
}

func redactQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return redacted
	}
	if _, ok := values[proxytoken.QueryName]; ok {
		values.Set(proxytoken.QueryName, redacted)
	}
	return values.Encode()
}

func hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return base64.RawStdEncoding.EncodeToString(sum[:12])
}
