package middleware

import (
	"net/http"
	"strings"

	"voxrelay/config"
	"voxrelay/internal/core"
	"voxrelay/internal/telemetry"
	"voxrelay/utils/proxytoken"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var corsAllowHeaders = []string{"Content-Type", "Authorization", proxytoken.HeaderName}

// 各端點允許的方法（OPTIONS 一律允許）
var corsAllowMethods = map[core.Endpoint][]string{
	core.EndpointChat:       {http.MethodPost, http.MethodOptions},
	core.EndpointTranscribe: {http.MethodPost, http.MethodOptions},
	core.EndpointStatus:     {http.MethodGet, http.MethodOptions},
	core.EndpointSettings:   {http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
}

type Cors struct {
	logger *zap.Logger
	trace  *telemetry.Trace
	config *config.Configuration
}

func NewCors(logger *zap.Logger, trace *telemetry.Trace, config *config.Configuration) *Cors {
	return &Cors{logger: logger, trace: trace, config: config}
}

// corsPolicy 一個端點解析後的 CORS 設定
type corsPolicy struct {
	// 非瀏覽器請求或 Origin 不在清單時回的固定值
	staticOrigin string
	// 交給 gin-contrib/cors 處理的來源（小寫）；nil 表示全部走固定 header
	allowed map[string]struct{}
	handler gin.HandlerFunc
}

// Handler 每個 /api 端點各自的 CORS 設定；OPTIONS 一律 204 無 body
func (m *Cors) Handler(endpoint core.Endpoint) gin.HandlerFunc {
	methods := corsAllowMethods[endpoint]
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	}
	policy := m.buildPolicy(endpoint, methods)

	allowMethods := strings.Join(methods, ", ")
	allowHeaders := strings.Join(corsAllowHeaders, ", ")

	type corsMeta struct {
		Endpoint     string   `trace:"http.cors.endpoint"`
		AllowOrigin  string   `trace:"http.cors.allow_origin"`
		AllowMethods []string `trace:"http.cors.allow_methods"`
		AllowHeaders []string `trace:"http.cors.allow_headers"`
		Preflight    bool     `trace:"http.cors.preflight"`
		Matched      bool     `trace:"http.cors.origin_matched"`
	}

	return func(c *gin.Context) {
		requestOrigin := c.GetHeader("Origin")
		matched := policy.matches(requestOrigin)

		_, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanCorsMiddleware))
		m.trace.ApplyTraceAttributes(span, corsMeta{
			Endpoint:     string(endpoint),
			AllowOrigin:  policy.staticOrigin,
			AllowMethods: methods,
			AllowHeaders: corsAllowHeaders,
			Preflight:    c.Request.Method == http.MethodOptions,
			Matched:      matched,
		})
		end(nil)

		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", policy.staticOrigin)
		header.Set("Access-Control-Allow-Methods", allowMethods)
		header.Set("Access-Control-Allow-Headers", allowHeaders)

		// 符合清單的瀏覽器請求交給 gin-contrib/cors（會覆寫 Allow-Origin；preflight 直接 204 中止）
		if matched {
			policy.handler(c)
			return
		}

		// 其餘一律回設定的來源，由瀏覽器自行擋下不符的 Origin
		if policy.staticOrigin != "*" {
			header.Add("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (m *Cors) buildPolicy(endpoint core.Endpoint, methods []string) corsPolicy {
	origin := m.config.Cors.Origin(string(endpoint))

	cfg := cors.Config{
		AllowMethods: methods,
		AllowHeaders: corsAllowHeaders,
	}
	policy := corsPolicy{staticOrigin: origin}
	if origin == "*" {
		cfg.AllowAllOrigins = true
	} else {
		valid, invalid := splitOrigins(origin)
		if len(invalid) > 0 {
			m.logger.Error("ignore cors origins without http(s) scheme",
				zap.String("endpoint", string(endpoint)),
				zap.Strings("origins", invalid),
			)
		}
		if len(valid) == 0 {
			return policy
		}
		policy.staticOrigin = valid[0]
		policy.allowed = make(map[string]struct{}, len(valid))
		for _, o := range valid {
			policy.allowed[o] = struct{}{}
		}
		cfg.AllowOrigins = valid
		cfg.AllowCredentials = true
	}

	// cors.New 遇到不合法設定會 panic，先驗證
	if err := cfg.Validate(); err != nil {
		m.logger.Error("invalid cors config, using static headers",
			zap.String("endpoint", string(endpoint)),
			zap.Error(err),
		)
		policy.allowed = nil
		return policy
	}
	policy.handler = cors.New(cfg)
	if cfg.AllowAllOrigins {
		policy.allowed = map[string]struct{}{"*": {}}
	}
	return policy
}

func (p corsPolicy) matches(requestOrigin string) bool {
	if requestOrigin == "" || p.handler == nil || p.allowed == nil {
		return false
	}
	if _, all := p.allowed["*"]; all {
		return true
	}
	_, ok := p.allowed[requestOrigin]
	return ok
}

// splitOrigins 以逗號分隔；只接受 http:// 或 https:// 開頭，統一轉小寫
func splitOrigins(origin string) (valid, invalid []string) {
	for _, p := range strings.Split(origin, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		lower := strings.ToLower(p)
		if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
			valid = append(valid, strings.TrimRight(lower, "/"))
			continue
		}
		invalid = append(invalid, p)
	}
	return valid, invalid
}
