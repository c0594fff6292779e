package telemetry

import (
	"voxrelay/config"
	"voxrelay/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric 未啟用時所有欄位為 nil，呼叫端需自行判斷
type Metric struct {
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec
	ProxySuccessTotal   *prometheus.CounterVec
	ProxyFailTotal      *prometheus.CounterVec
	UpstreamStatusTotal *prometheus.CounterVec
	GuardRejectedTotal  *prometheus.CounterVec
	SecretConfigured    *prometheus.GaugeVec
	config              *config.Configuration
}

// NewMetric 建立所有指標
func NewMetric(config *config.Configuration) *Metric {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}
	}
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	prefix := config.App.ServiceName() + "_"
	return &Metric{
		config: config,
		HttpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricHttpRequestsTotal),
				Help: "Total received API requests",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + string(core.MetricHttpRequestDuration),
				Help:    "Request duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		ProxySuccessTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricProxySuccessTotal),
				Help: "Successful responses count",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		ProxyFailTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricProxyFailTotal),
				Help: "Failed responses count",
			},
			labelNames(core.MetricLabelReason),
		),
		UpstreamStatusTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricUpstreamStatusTotal),
				Help: "Upstream provider responses by status",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		GuardRejectedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricGuardRejectedTotal),
				Help: "Requests rejected by the proxy token guard",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelReason),
		),
		SecretConfigured: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: prefix + string(core.MetricSecretConfigured),
				Help: "1 when a provider API key is resolvable, labelled by source",
			},
			labelNames(core.MetricLabelSource),
		),
	}
}

// ObserveUpstream 紀錄上游回應狀態
func (m *Metric) ObserveUpstream(endpoint core.Endpoint, status string) {
	if m == nil || m.UpstreamStatusTotal == nil {
		return
	}
	m.UpstreamStatusTotal.WithLabelValues(string(endpoint), status).Inc()
}

// ObserveGuardRejected 紀錄 guard 拒絕
func (m *Metric) ObserveGuardRejected(endpoint core.Endpoint, reason string) {
	if m == nil || m.GuardRejectedTotal == nil {
		return
	}
	m.GuardRejectedTotal.WithLabelValues(string(endpoint), reason).Inc()
}

// SetSecretSource 只讓目前來源為 1，其餘歸零
func (m *Metric) SetSecretSource(source core.SecretSource) {
	if m == nil || m.SecretConfigured == nil {
		return
	}
	for _, s := range []core.SecretSource{core.SecretSourceEnvironment, core.SecretSourceStorage} {
		v := 0.0
		if s == source {
			v = 1
		}
		m.SecretConfigured.WithLabelValues(string(s)).Set(v)
	}
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
