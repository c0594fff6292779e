package repository

import (
	"context"
	"encoding/json"
	"time"

	"voxrelay/config"
	"voxrelay/internal/core"
	"voxrelay/internal/database/client"
	"voxrelay/internal/database/fluentd/model"
)

// LogRepository 統一負責發送 Request/Response/Usage/Secret Log 到 Fluentd
type LogRepository struct {
	fluentdClient client.Client
	version       string
}

func NewLogRepository(config *config.Configuration, client client.Client) *LogRepository {
	version := "1.0.0"
	if config.App.Version != "" {
		version = config.App.Version
	}
	return &LogRepository{fluentdClient: client, version: version}
}

func (repository *LogRepository) LogRequest(ctx context.Context, req model.RequestLog) error {
	if req.LoggedAt == "" {
		req.LoggedAt = now()
	}
	if req.Version == "" {
		req.Version = repository.version
	}
	return repository.post(ctx, core.FluentdRequest, req)
}

func (repository *LogRepository) LogResponse(ctx context.Context, resp model.ResponseLog) error {
	if resp.LoggedAt == "" {
		resp.LoggedAt = now()
	}
	if resp.Version == "" {
		resp.Version = repository.version
	}
	return repository.post(ctx, core.FluentdResponse, resp)
}

func (repository *LogRepository) LogUsage(ctx context.Context, usage model.AIUsageLog) error {
	if usage.LoggedAt == "" {
		usage.LoggedAt = now()
	}
	if usage.Version == "" {
		usage.Version = repository.version
	}
	return repository.post(ctx, core.FluentUsage, usage)
}

func (repository *LogRepository) LogSecret(ctx context.Context, audit model.SecretAuditLog) error {
	if audit.LoggedAt == "" {
		audit.LoggedAt = now()
	}
	if audit.Version == "" {
		audit.Version = repository.version
	}
	return repository.post(ctx, core.FluentSecret, audit)
}

// fluent-logger 需要 map，先經 JSON 轉換保留 tag 命名
func (repository *LogRepository) post(ctx context.Context, tag core.FluentdSubTag, record any) error {
	if repository == nil || repository.fluentdClient == nil {
		return nil
	}
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}
	var fluentdMessage map[string]any
	if err := json.Unmarshal(b, &fluentdMessage); err != nil {
		return err
	}
	return repository.fluentdClient.Post(ctx, string(tag), fluentdMessage)
}

func now() string {
	return time.Now().UTC().Format(LogTimeLayout)
}
