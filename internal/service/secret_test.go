package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"voxrelay/config"
	"voxrelay/internal/core"
	fileRepo "voxrelay/internal/database/file/repository"
	fluentdRepo "voxrelay/internal/database/fluentd/repository"
	"voxrelay/internal/dto"
	cErr "voxrelay/internal/pkg/error"
	"voxrelay/internal/telemetry"

	"go.uber.org/zap"
)

type memoryStore struct {
	mu      sync.Mutex
	secret  *dto.StoredSecret
	readErr error
	writes  int
}

func (m *memoryStore) Read(ctx context.Context) (*dto.StoredSecret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	if m.secret == nil {
		return nil, nil
	}
	copied := *m.secret
	return &copied, nil
}

func (m *memoryStore) Write(ctx context.Context, apiKey string) (*dto.StoredSecret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	m.secret = &dto.StoredSecret{APIKey: apiKey, UpdatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}
	return m.secret, nil
}

func (m *memoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secret = nil
	return nil
}

func newTestSecretService(conf *config.Configuration, store SecretStore) *SecretService {
	return NewSecretService(
		conf,
		store,
		NewLocalLocker(),
		fluentdRepo.NewLogRepository(conf, nil),
		&telemetry.Trace{},
		&telemetry.Metric{},
		zap.NewNop(),
	)
}

func TestResolve_Precedence(t *testing.T) {
	store := &memoryStore{secret: &dto.StoredSecret{APIKey: "sk-stored"}}

	envConf := &config.Configuration{OpenAI: config.OpenAI{APIKey: "  sk-env  "}}
	got, err := newTestSecretService(envConf, store).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Key != "sk-env" || got.Source != core.SecretSourceEnvironment {
		t.Errorf("env resolve = %+v", got)
	}

	got, err = newTestSecretService(&config.Configuration{}, store).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Key != "sk-stored" || got.Source != core.SecretSourceStorage {
		t.Errorf("storage resolve = %+v", got)
	}

	got, err = newTestSecretService(&config.Configuration{}, &memoryStore{}).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Configured() || got.Source != core.SecretSourceNone {
		t.Errorf("empty resolve = %+v", got)
	}
}

func TestResolve_BlankStoredKeyIsAbsent(t *testing.T) {
	store := &memoryStore{secret: &dto.StoredSecret{APIKey: "   "}}
	got, err := newTestSecretService(&config.Configuration{}, store).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Configured() {
		t.Errorf("expected not configured, got %+v", got)
	}
}

func TestResolve_StorageErrorPropagates(t *testing.T) {
	store := &memoryStore{readErr: errors.New("disk on fire")}
	_, err := newTestSecretService(&config.Configuration{}, store).Resolve(context.Background())
	if e := cErr.From(err); e == nil || e.HttpCode() != http.StatusInternalServerError {
		t.Fatalf("expected 500 storage error, got %v", err)
	}
}

func TestResolve_ReadsStoreOnEveryCall(t *testing.T) {
	store := &memoryStore{}
	svc := newTestSecretService(&config.Configuration{}, store)
	ctx := context.Background()

	if got, _ := svc.Resolve(ctx); got.Configured() {
		t.Fatalf("expected empty store first")
	}
	_, _ = store.Write(ctx, "sk-late")
	if got, _ := svc.Resolve(ctx); got.Key != "sk-late" {
		t.Fatalf("expected fresh read, got %+v", got)
	}
}

func TestRequireKey_NotConfigured(t *testing.T) {
	_, err := newTestSecretService(&config.Configuration{}, &memoryStore{}).RequireKey(context.Background())
	e := cErr.From(err)
	if e == nil || e.HttpCode() != http.StatusInternalServerError || e.ErrorDesc() != "OpenAI API key is not configured." {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestSaveTrimsAndReturnsMaskedView(t *testing.T) {
	dir := t.TempDir()
	conf := &config.Configuration{Storage: config.Storage{Dir: dir}}
	store := NewSecretStore(conf, fileRepo.NewSecretRepository(conf), nil)
	svc := newTestSecretService(conf, store)

	view, err := svc.Save(context.Background(), "  sk-abc  ", ActorHTTP)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !view.Configured || view.Source == nil || *view.Source != "storage" {
		t.Errorf("view = %+v", view)
	}
	if view.Preview != "**-abc" {
		t.Errorf("preview = %q", view.Preview)
	}
	if view.UpdatedAt == "" {
		t.Errorf("expected updatedAt")
	}

	resolved, err := svc.Resolve(context.Background())
	if err != nil || resolved.Key != "sk-abc" {
		t.Fatalf("resolved = %+v, err = %v", resolved, err)
	}

	view, err = svc.Clear(context.Background(), ActorHTTP)
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if view.Configured || view.Source != nil || view.Preview != "" {
		t.Errorf("view after clear = %+v", view)
	}
}

func TestSaveRejectsBlankKey(t *testing.T) {
	store := &memoryStore{}
	_, err := newTestSecretService(&config.Configuration{}, store).Save(context.Background(), "   ", ActorHTTP)
	if e := cErr.From(err); e == nil || e.HttpCode() != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if store.writes != 0 {
		t.Errorf("store should not be written")
	}
}

func TestWritesRejectedWhenEnvironmentManaged(t *testing.T) {
	conf := &config.Configuration{OpenAI: config.OpenAI{APIKey: "sk-env"}}
	svc := newTestSecretService(conf, &memoryStore{})

	if _, err := svc.Save(context.Background(), "sk-new", ActorHTTP); cErr.From(err) == nil || cErr.From(err).HttpCode() != http.StatusMethodNotAllowed {
		t.Errorf("Save: expected 405, got %v", err)
	}
	if _, err := svc.Clear(context.Background(), ActorHTTP); cErr.From(err) == nil || cErr.From(err).HttpCode() != http.StatusMethodNotAllowed {
		t.Errorf("Clear: expected 405, got %v", err)
	}
}

func TestStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	status, err := newTestSecretService(&config.Configuration{}, &memoryStore{}).Status(context.Background(), now)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.OpenAIConfigured || status.Source != nil {
		t.Errorf("status = %+v", status)
	}
	if status.Message != "OpenAI API key is not configured." {
		t.Errorf("message = %q", status.Message)
	}
	if status.Timestamp != "2025-06-01T11:00:00Z" {
		t.Errorf("timestamp = %q", status.Timestamp)
	}
}

func TestMaskKey(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"abc":        "***",
		"abcd":       "****",
		"sk-test":    "***test",
		"sk-1234567": "******4567",
	}
	for in, want := range tests {
		if got := MaskKey(in); got != want {
			t.Errorf("MaskKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLocalLockerSerializes(t *testing.T) {
	locker := NewLocalLocker()
	unlock, err := locker.Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := locker.Lock(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected second lock to block, got %v", err)
	}

	_ = unlock(context.Background())
	unlock, err = locker.Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock() after release error = %v", err)
	}
	_ = unlock(context.Background())
}
