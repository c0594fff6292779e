package service

import (
	"context"
	"strings"
	"time"

	"voxrelay/config"
	"voxrelay/internal/core"
	fileRepo "voxrelay/internal/database/file/repository"
	"voxrelay/internal/database/fluentd/model"
	fluentdRepo "voxrelay/internal/database/fluentd/repository"
	mongoRepo "voxrelay/internal/database/mongodb/repository"
	redisRepo "voxrelay/internal/database/redis/repository"
	"voxrelay/internal/dto"
	cErr "voxrelay/internal/pkg/error"
	"voxrelay/internal/telemetry"

	"go.uber.org/zap"
)

const (
	secretLockName   = "openai"
	maskVisibleChars = 4

	ActorHTTP = "http"
	ActorCLI  = "cli"
)

// SecretStore 金鑰儲存後端（檔案或 mongo）
type SecretStore interface {
	Read(ctx context.Context) (*dto.StoredSecret, error)
	Write(ctx context.Context, apiKey string) (*dto.StoredSecret, error)
	Clear(ctx context.Context) error
}

// NewSecretStore 依 STORAGE__DRIVER 選擇後端
func NewSecretStore(
	conf *config.Configuration,
	fileRepository *fileRepo.SecretRepository,
	mongoRepository *mongoRepo.ProviderSecretRepository,
) SecretStore {
	if conf.Storage.DriverOrDefault() == config.StorageDriverMongo {
		return mongoRepository
	}
	return fileRepository
}

// Locker 序列化金鑰寫入
type Locker interface {
	Lock(ctx context.Context) (unlock func(context.Context) error, err error)
}

// NewLocker 有 Redis 時跨程序互斥，否則只在本程序內互斥
func NewLocker(lockRepository *redisRepo.LockRepository) Locker {
	if lockRepository.Enabled() {
		return &redisLocker{repository: lockRepository}
	}
	return NewLocalLocker()
}

type localLocker struct {
	sem chan struct{}
}

func NewLocalLocker() Locker {
	return &localLocker{sem: make(chan struct{}, 1)}
}

func (l *localLocker) Lock(ctx context.Context) (func(context.Context) error, error) {
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	released := false
	return func(context.Context) error {
		if !released {
			released = true
			<-l.sem
		}
		return nil
	}, nil
}

type redisLocker struct {
	repository *redisRepo.LockRepository
}

func (l *redisLocker) Lock(ctx context.Context) (func(context.Context) error, error) {
	return l.repository.Acquire(ctx, secretLockName)
}

type SecretService struct {
	config        *config.Configuration
	store         SecretStore
	locker        Locker
	logRepository *fluentdRepo.LogRepository
	trace         *telemetry.Trace
	metric        *telemetry.Metric
	logger        *zap.Logger
}

func NewSecretService(
	config *config.Configuration,
	store SecretStore,
	locker Locker,
	logRepository *fluentdRepo.LogRepository,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	logger *zap.Logger,
) *SecretService {
	return &SecretService{
		config:        config,
		store:         store,
		locker:        locker,
		logRepository: logRepository,
		trace:         trace,
		metric:        metric,
		logger:        logger,
	}
}

// EnvironmentManaged 金鑰由環境變數提供時，設定端點不可寫入
func (s *SecretService) EnvironmentManaged() bool {
	return strings.TrimSpace(s.config.OpenAI.APIKey) != ""
}

// Resolve 環境變數 → 儲存紀錄 → 無；每次呼叫都重新讀取儲存
func (s *SecretService) Resolve(ctx context.Context) (_ dto.ResolvedSecret, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx, string(core.SpanSecretResolve))
	defer func() { end(returnedError) }()

	resolved := dto.ResolvedSecret{Source: core.SecretSourceNone}
	if key := strings.TrimSpace(s.config.OpenAI.APIKey); key != "" {
		resolved = dto.ResolvedSecret{Key: key, Source: core.SecretSourceEnvironment}
	} else {
		stored, err := s.store.Read(ctx)
		if err != nil {
			s.logger.Error("read stored secret failed", zap.Error(err))
			return resolved, cErr.StorageError("Failed to read the stored OpenAI API key.")
		}
		if stored != nil {
			if key := strings.TrimSpace(stored.APIKey); key != "" {
				updatedAt := stored.UpdatedAt
				resolved = dto.ResolvedSecret{Key: key, Source: core.SecretSourceStorage, UpdatedAt: &updatedAt}
			}
		}
	}

	s.trace.ApplyTraceAttributes(span, core.TraceSecretMeta{
		Op:         "resolve",
		Source:     string(resolved.Source),
		Driver:     s.config.Storage.DriverOrDefault(),
		Configured: resolved.Configured(),
	})
	s.metric.SetSecretSource(resolved.Source)
	return resolved, nil
}

// RequireKey 未設定金鑰時回傳 ConfigurationError
func (s *SecretService) RequireKey(ctx context.Context) (dto.ResolvedSecret, error) {
	resolved, err := s.Resolve(ctx)
	if err != nil {
		return resolved, err
	}
	if !resolved.Configured() {
		return resolved, cErr.ConfigurationError("OpenAI API key is not configured.")
	}
	return resolved, nil
}

// View GET /api/openai-settings
func (s *SecretService) View(ctx context.Context) (*dto.SettingsView, error) {
	resolved, err := s.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return buildSettingsView(resolved), nil
}

// Save 寫入前 trim；環境變數管理時回傳 405
func (s *SecretService) Save(ctx context.Context, apiKey string, actor string) (*dto.SettingsView, error) {
	if s.EnvironmentManaged() {
		return nil, cErr.MethodNotAllowed("OpenAI API key is managed by the environment and cannot be changed.")
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, cErr.ValidateErr("apiKey is required")
	}

	err := s.withLock(ctx, func(ctx context.Context) error {
		if _, err := s.store.Write(ctx, apiKey); err != nil {
			s.logger.Error("write stored secret failed", zap.Error(err))
			return cErr.StorageError("Failed to store the OpenAI API key.")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, "save", MaskKey(apiKey), actor)
	return s.View(ctx)
}

// Clear 刪除儲存的金鑰；檔案不存在不算錯誤
func (s *SecretService) Clear(ctx context.Context, actor string) (*dto.SettingsView, error) {
	if s.EnvironmentManaged() {
		return nil, cErr.MethodNotAllowed("OpenAI API key is managed by the environment and cannot be changed.")
	}
	err := s.withLock(ctx, func(ctx context.Context) error {
		if err := s.store.Clear(ctx); err != nil {
			s.logger.Error("clear stored secret failed", zap.Error(err))
			return cErr.StorageError("Failed to clear the OpenAI API key.")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, "clear", "", actor)
	return s.View(ctx)
}

// Status GET /api/status
func (s *SecretService) Status(ctx context.Context, now time.Time) (*dto.StatusPayload, error) {
	resolved, err := s.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	message := "OpenAI API key is not configured."
	if resolved.Configured() {
		message = "OpenAI API key is configured."
	}
	return &dto.StatusPayload{
		OpenAIConfigured: resolved.Configured(),
		Source:           dto.SourcePointer(resolved.Source),
		Message:          message,
		Timestamp:        now.UTC().Format(time.RFC3339),
	}, nil
}

func (s *SecretService) withLock(ctx context.Context, fn func(context.Context) error) error {
	unlock, err := s.locker.Lock(ctx)
	if err != nil {
		s.logger.Error("acquire secret lock failed", zap.Error(err))
		return cErr.StorageError("Failed to acquire the settings lock.")
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("release secret lock failed", zap.Error(err))
		}
	}()
	return fn(ctx)
}

func (s *SecretService) audit(ctx context.Context, action, preview, actor string) {
	s.logger.Info("provider secret changed",
		zap.String("action", action),
		zap.String("driver", s.config.Storage.DriverOrDefault()),
		zap.String("preview", preview),
		zap.String("actor", actor),
	)
	if err := s.logRepository.LogSecret(ctx, model.SecretAuditLog{
		ProjectName: s.config.App.Name,
		Action:      action,
		Driver:      s.config.Storage.DriverOrDefault(),
		Preview:     preview,
		Actor:       actor,
	}); err != nil {
		s.logger.Warn("send secret audit log failed", zap.Error(err))
	}
}

func buildSettingsView(resolved dto.ResolvedSecret) *dto.SettingsView {
	view := &dto.SettingsView{
		Configured: resolved.Configured(),
		Source:     dto.SourcePointer(resolved.Source),
	}
	if resolved.Configured() {
		view.Preview = MaskKey(resolved.Key)
	}
	if resolved.UpdatedAt != nil && !resolved.UpdatedAt.IsZero() {
		view.UpdatedAt = resolved.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return view
}

// MaskKey 只保留最後 4 碼，4 碼以下全部遮罩
func MaskKey(key string) string {
	runes := []rune(key)
	if len(runes) <= maskVisibleChars {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-maskVisibleChars) + string(runes[len(runes)-maskVisibleChars:])
}
