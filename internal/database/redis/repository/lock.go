package repository

import (
	"context"
	"errors"
	"time"

	"voxrelay/internal/core"
	client "voxrelay/internal/database/client"
	"voxrelay/internal/telemetry"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultLockTTL   = 10 * time.Second
	defaultLockRetry = 50 * time.Millisecond
)

var ErrRedisDisabled = errors.New("redis is not enabled")

// 只刪除自己持有的鎖
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockRepository 以 SET NX PX 實作跨程序互斥鎖
type LockRepository struct {
	trace  *telemetry.Trace
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
}

func NewLockRepository(trace *telemetry.Trace, client *client.RedisClient) *LockRepository {
	return &LockRepository{
		trace:  trace,
		client: client.Client(),
		ttl:    defaultLockTTL,
		retry:  defaultLockRetry,
	}
}

func (repository *LockRepository) Enabled() bool {
	return repository != nil && repository.client != nil
}

// Acquire 阻塞直到取得鎖或 ctx 結束；回傳的 release 可重複呼叫
func (repository *LockRepository) Acquire(contextValue context.Context, name string) (release func(context.Context) error, returnedError error) {
	if !repository.Enabled() {
		return nil, ErrRedisDisabled
	}
	contextValue, span, endSpan := repository.trace.WithSpan(contextValue, "redis.lock.acquire")
	defer func() { endSpan(returnedError) }()

	key := repository.buildKey(name)
	token := uuid.NewString()
	span.SetAttributes(attribute.String("redis.lock.key", key))

	attempts := 0
	for {
		attempts++
		acquired, setError := repository.client.SetNX(contextValue, key, token, repository.ttl).Result()
		if setError != nil {
			returnedError = setError
			return nil, returnedError
		}
		if acquired {
			span.SetAttributes(attribute.Int("redis.lock.attempts", attempts))
			break
		}
		select {
		case <-contextValue.Done():
			returnedError = contextValue.Err()
			return nil, returnedError
		case <-time.After(repository.retry):
		}
	}

	released := false
	release = func(ctx context.Context) error {
		if released {
			return nil
		}
		released = true
		return releaseScript.Run(ctx, repository.client, []string{key}, token).Err()
	}
	return release, nil
}

func (repository *LockRepository) buildKey(name string) string {
	return string(core.RedisKeyServerName) + ":" + string(core.RedisKeySecretWriter) + ":" + name
}
