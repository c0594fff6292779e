package proxy

import (
	"context"
	"encoding/json"

	"voxrelay/config"
	"voxrelay/internal/core"
	fluentdModel "voxrelay/internal/database/fluentd/model"
	"voxrelay/internal/database/fluentd/repository"
	"voxrelay/internal/dto"

	"go.uber.org/zap"
)

// chatUsage 只取 usage 相關欄位，其餘原樣回傳給前端
type chatUsage struct {
	Model string `json:"model"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type usageLogger struct {
	logger        *zap.Logger
	config        *config.Configuration
	logRepository *repository.LogRepository
}

func (u usageLogger) log(ctx context.Context, entry fluentdModel.AIUsageLog, secret dto.ResolvedSecret) {
	entry.ProjectName = u.config.App.Name
	entry.Provider = string(core.ProviderOpenAI)
	entry.KeySource = string(secret.Source)
	if err := u.logRepository.LogUsage(ctx, entry); err != nil {
		u.logger.Warn("send usage log failed", zap.Error(err))
	}
}

func parseChatUsage(body []byte) chatUsage {
	var usage chatUsage
	_ = json.Unmarshal(body, &usage)
	return usage
}
