package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	client "voxrelay/internal/database/client"
	"voxrelay/internal/telemetry"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newTestLockRepository(t *testing.T) (*LockRepository, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	repository := NewLockRepository(&telemetry.Trace{}, client.WrapRedisClient(zap.NewNop(), rdb))
	repository.retry = 5 * time.Millisecond
	return repository, server
}

func TestLockRepository_AcquireAndRelease(t *testing.T) {
	repository, server := newTestLockRepository(t)
	ctx := context.Background()

	release, err := repository.Acquire(ctx, "openai")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	key := repository.buildKey("openai")
	if !server.Exists(key) {
		t.Fatalf("expected lock key %q to exist", key)
	}
	if err := release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if server.Exists(key) {
		t.Fatalf("expected lock key %q to be removed", key)
	}
	if err := release(ctx); err != nil {
		t.Fatalf("second release should be a no-op, got %v", err)
	}
}

func TestLockRepository_BlocksUntilContextDone(t *testing.T) {
	repository, _ := newTestLockRepository(t)

	release, err := repository.Acquire(context.Background(), "openai")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer release(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if _, err := repository.Acquire(ctx, "openai"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestLockRepository_ReleaseKeepsForeignLock(t *testing.T) {
	repository, server := newTestLockRepository(t)
	ctx := context.Background()

	release, err := repository.Acquire(ctx, "openai")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	key := repository.buildKey("openai")
	// 模擬 TTL 過期後被其他程序取得
	if err := server.Set(key, "someone-else"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if got, _ := server.Get(key); got != "someone-else" {
		t.Fatalf("foreign lock was removed, got %q", got)
	}
}

func TestLockRepository_Disabled(t *testing.T) {
	repository := NewLockRepository(&telemetry.Trace{}, client.WrapRedisClient(zap.NewNop(), nil))
	if repository.Enabled() {
		t.Fatal("expected disabled repository")
	}
	if _, err := repository.Acquire(context.Background(), "openai"); !errors.Is(err, ErrRedisDisabled) {
		t.Fatalf("expected ErrRedisDisabled, got %v", err)
	}
}
