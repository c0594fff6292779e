package job

import (
	"context"
	"sync"
	"time"

	"voxrelay/internal/core"
	"voxrelay/internal/service"
	"voxrelay/internal/telemetry"

	"go.uber.org/zap"
)

const probeTimeout = 10 * time.Second

// SecretProbe 定期解析金鑰：更新 secret_configured gauge 與 readiness
type SecretProbe struct {
	logger        *zap.Logger
	trace         *telemetry.Trace
	secretService *service.SecretService
	healthService *service.HealthService

	mu         sync.Mutex
	lastSource *core.SecretSource
}

func NewSecretProbe(
	logger *zap.Logger,
	trace *telemetry.Trace,
	secretService *service.SecretService,
	healthService *service.HealthService,
) *SecretProbe {
	return &SecretProbe{
		logger:        logger,
		trace:         trace,
		secretService: secretService,
		healthService: healthService,
	}
}

func (p *SecretProbe) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	p.probe(ctx)
}

func (p *SecretProbe) probe(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ctx, _, end := p.trace.WithSpan(ctx, string(core.SpanSecretProbe))
	resolved, err := p.secretService.Resolve(ctx)
	end(err)
	if err != nil {
		p.logger.Error("secret probe failed", zap.Error(err))
		p.healthService.SetReady(false)
		return
	}
	if !p.healthService.Draining() {
		p.healthService.SetReady(true)
	}

	if p.lastSource == nil || *p.lastSource != resolved.Source {
		p.logger.Info("secret source changed",
			zap.Bool("configured", resolved.Configured()),
			zap.String("source", string(resolved.Source)),
		)
		source := resolved.Source
		p.lastSource = &source
	}
}
