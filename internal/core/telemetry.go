package core

const ContextTraceKey = "telemetry_trace_ctx"

// ContextRequestIDKey 每個請求的 uuid v7，錯誤回應與 usage log 共用
const ContextRequestIDKey = "request_id"

// HeaderRequestID 回應帶出的 request id header
const HeaderRequestID = "X-Request-ID"

// ==== 型別安全 span name ====
// 專案全域建議都寫這裡，方便集中管理
type TraceSpanName string

const (
	SpanHttpRequest        TraceSpanName = "http_request"
	SpanLoggerMiddleware   TraceSpanName = "logger_middleware"
	SpanRecoveryMiddleware TraceSpanName = "recovery_middleware"
	SpanCorsMiddleware     TraceSpanName = "cors_middleware"
	SpanResponseMiddleware TraceSpanName = "response_middleware"
	SpanProxyTokenGuard    TraceSpanName = "proxy_token_guard"
	SpanSecretResolve      TraceSpanName = "secret_resolve"
	SpanSecretProbe        TraceSpanName = "secret_probe"
)

// 指標名稱常數
type MetricName string

const (
	MetricHttpRequestsTotal   MetricName = "requests_total"
	MetricHttpRequestDuration MetricName = "request_duration_seconds"
	MetricProxySuccessTotal   MetricName = "proxy_success_total"
	MetricProxyFailTotal      MetricName = "proxy_fail_total"
	MetricUpstreamStatusTotal MetricName = "upstream_status_total"
	MetricGuardRejectedTotal  MetricName = "guard_rejected_total"
	MetricSecretConfigured    MetricName = "secret_configured"
)

// label name 常數
type MetricLabelName string

const (
	MetricLabelEndpoint MetricLabelName = "endpoint"
	MetricLabelStatus   MetricLabelName = "status"
	MetricLabelReason   MetricLabelName = "reason"
	MetricLabelSource   MetricLabelName = "source"
)

type LoggerRequestMeta struct {
	Method     string            `trace:"request.method"`
	Path       string            `trace:"request.path"`
	FullPath   string            `trace:"request.full_path"`
	Query      string            `trace:"request.query"`
	Body       string            `trace:"request.body"`
	Scheme     string            `trace:"http.scheme"`
	Host       string            `trace:"http.host"`
	UserAgent  string            `trace:"http.user_agent"`
	ContentLen int64             `trace:"http.request_content_length"`
	Proto      string            `trace:"http.flavor"`
	ClientIP   string            `trace:"net.peer.ip"`
	Headers    map[string]string `trace:"http.request.header"`
	Params     map[string]string `trace:"http.request.param"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"net.peer.ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"response.latency_ms"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"error.message"`
	Stack      string  `trace:"error.stack"`
}

type TraceErrorMeta struct {
	Code       int     `trace:"error.code"`
	Message    string  `trace:"error.message"`
	Detail     string  `trace:"error.detail"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"response.message"`
	Code       int     `trace:"response.code"`
	DurationMs float64 `trace:"response.latency_ms"`
	Data       string  `trace:"response.data_preview"`
}
type TraceHttpServerMeta struct {
	// request side
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"http.request.path"`
	UrlScheme         string `trace:"http.request.url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanKind          string `trace:"span.kind"`
	SpanTraceID       string `trace:"span.trace_id"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
}
type TraceGuardMeta struct {
	Endpoint string `trace:"guard.endpoint"`
	Mode     string `trace:"guard.mode"`
	Where    string `trace:"guard.where,omitempty"`
	Decision string `trace:"guard.decision"`
	ClientIP string `trace:"net.peer.ip,omitempty"`
}

type TraceSecretMeta struct {
	Op         string `trace:"secret.op"`
	Source     string `trace:"secret.source"`
	Driver     string `trace:"secret.driver"`
	Configured bool   `trace:"secret.configured"`
}

type TraceUpstreamMeta struct {
	Provider   string `trace:"ai.provider"`
	Endpoint   string `trace:"ai.endpoint"`
	Model      string `trace:"ai.model"`
	URL        string `trace:"http.url"`
	StatusCode int    `trace:"http.status_code"`
}

type TraceUploadMeta struct {
	Filename string `trace:"upload.filename"`
	MimeType string `trace:"upload.mime_type"`
	Size     int64  `trace:"upload.size"`
	Rebuilt  bool   `trace:"upload.rebuilt"`
}
