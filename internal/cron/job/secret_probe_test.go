package job

import (
	"context"
	"errors"
	"testing"

	"voxrelay/config"
	fluentdRepo "voxrelay/internal/database/fluentd/repository"
	"voxrelay/internal/dto"
	"voxrelay/internal/service"
	"voxrelay/internal/telemetry"

	"go.uber.org/zap"
)

type stubStore struct {
	secret *dto.StoredSecret
	err    error
}

func (s *stubStore) Read(ctx context.Context) (*dto.StoredSecret, error) { return s.secret, s.err }

func (s *stubStore) Write(ctx context.Context, apiKey string) (*dto.StoredSecret, error) {
	s.secret = &dto.StoredSecret{APIKey: apiKey}
	return s.secret, nil
}

func (s *stubStore) Clear(ctx context.Context) error {
	s.secret = nil
	return nil
}

func newProbe(store service.SecretStore) (*SecretProbe, *service.HealthService) {
	conf := &config.Configuration{}
	secretService := service.NewSecretService(
		conf,
		store,
		service.NewLocalLocker(),
		fluentdRepo.NewLogRepository(conf, nil),
		&telemetry.Trace{},
		&telemetry.Metric{},
		zap.NewNop(),
	)
	health := service.NewHealthService()
	return NewSecretProbe(zap.NewNop(), &telemetry.Trace{}, secretService, health), health
}

func TestSecretProbe_Readiness(t *testing.T) {
	store := &stubStore{secret: &dto.StoredSecret{APIKey: "sk-stored"}}
	probe, health := newProbe(store)

	probe.probe(context.Background())
	if !health.IsReady() {
		t.Fatal("expected ready after successful probe")
	}
	if probe.lastSource == nil || *probe.lastSource != "storage" {
		t.Errorf("lastSource = %v, want storage", probe.lastSource)
	}

	store.err = errors.New("disk gone")
	probe.probe(context.Background())
	if health.IsReady() {
		t.Fatal("expected not ready after storage failure")
	}

	store.err = nil
	store.secret = nil
	probe.probe(context.Background())
	if !health.IsReady() {
		t.Fatal("missing key should not fail readiness")
	}
	if probe.lastSource == nil || *probe.lastSource != "" {
		t.Errorf("lastSource = %v, want none", probe.lastSource)
	}
}

func TestSecretProbe_KeepsNotReadyWhileDraining(t *testing.T) {
	store := &stubStore{secret: &dto.StoredSecret{APIKey: "sk-stored"}}
	probe, health := newProbe(store)

	probe.probe(context.Background())
	if !health.IsReady() {
		t.Fatal("expected ready before shutdown")
	}

	health.Drain()
	probe.probe(context.Background())
	if health.IsReady() {
		t.Fatal("probe tick during shutdown must not restore readiness")
	}
}
