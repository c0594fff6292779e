package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"voxrelay/config"
	"voxrelay/internal/service"

	"github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const commandTimeout = 30 * time.Second

// SecretHandler 維運用的金鑰指令，與 HTTP 端點共用同一組 Store 與 Locker
type SecretHandler struct {
	logger        *zap.Logger
	config        *config.Configuration
	secretService *service.SecretService
}

func NewSecretHandler(
	logger *zap.Logger,
	config *config.Configuration,
	secretService *service.SecretService,
) *SecretHandler {
	return &SecretHandler{
		logger:        logger,
		config:        config,
		secretService: secretService,
	}
}

func (handler *SecretHandler) Show(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	view, err := handler.secretService.View(ctx)
	if err != nil {
		return err
	}
	if !view.Configured {
		cmd.Println("OpenAI API key is not configured.")
		return nil
	}
	cmd.Printf("source:    %s\n", *view.Source)
	cmd.Printf("preview:   %s\n", view.Preview)
	if view.UpdatedAt != "" {
		cmd.Printf("updatedAt: %s\n", view.UpdatedAt)
	}
	return nil
}

func (handler *SecretHandler) Set(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	view, err := handler.secretService.Save(ctx, strings.Join(args, ""), service.ActorCLI)
	if err != nil {
		return err
	}
	cmd.Printf("saved %s\n", view.Preview)
	return nil
}

func (handler *SecretHandler) Clear(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	view, err := handler.secretService.Clear(ctx, service.ActorCLI)
	if err != nil {
		return err
	}
	if view.Configured {
		// 儲存已清除，但環境變數仍提供金鑰
		cmd.Printf("stored key cleared; %s key is still active\n", *view.Source)
		return nil
	}
	cmd.Println("stored key cleared")
	return nil
}

// Verify 以 ListModels 確認金鑰可用
func (handler *SecretHandler) Verify(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	resolved, err := handler.secretService.RequireKey(ctx)
	if err != nil {
		return err
	}
	clientConfig := openai.DefaultConfig(resolved.Key)
	clientConfig.BaseURL = strings.TrimSuffix(handler.config.OpenAI.Endpoint(""), "/")
	client := openai.NewClientWithConfig(clientConfig)

	models, err := client.ListModels(ctx)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("key rejected by provider: %s", apiErr.Message)
		}
		return fmt.Errorf("verify key: %w", err)
	}
	handler.logger.Info("secret verified",
		zap.String("source", string(resolved.Source)),
		zap.Int("models", len(models.Models)),
	)
	cmd.Printf("key from %s is valid (%d models visible)\n", resolved.Source, len(models.Models))
	return nil
}
