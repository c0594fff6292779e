package cron

import (
	"context"
	"strings"

	"voxrelay/config"
	"voxrelay/internal/cron/job"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron, job.NewSecretProbe)

const (
	defaultSecretProbeSpec = "@every 1m"
	disabledSpec           = "-"
)

type Cron struct {
	logger      *zap.Logger
	config      *config.Configuration
	server      *cron.Cron
	secretProbe *job.SecretProbe
}

// NewCron .
func NewCron(logger *zap.Logger, config *config.Configuration, secretProbe *job.SecretProbe) *Cron {
	server := cron.New(
		cron.WithSeconds(),
	)

	return &Cron{
		logger:      logger,
		config:      config,
		server:      server,
		secretProbe: secretProbe,
	}
}

func (c *Cron) Run() error {
	spec := strings.TrimSpace(c.config.Cron.SecretProbe)
	if spec == "" {
		spec = defaultSecretProbeSpec
	}
	if spec != disabledSpec {
		if _, err := c.server.AddFunc(spec, c.secretProbe.Run); err != nil {
			return err
		}
		c.logger.Info("secret probe scheduled", zap.String("spec", spec))
		// 啟動時先跑一次，讓 gauge 立即有值
		go c.secretProbe.Run()
	}

	c.server.Start()
	return nil
}

func (c *Cron) Stop(ctx context.Context) error {
	stopped := c.server.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
