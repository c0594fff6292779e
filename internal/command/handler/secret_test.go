package command

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voxrelay/config"
	fileRepo "voxrelay/internal/database/file/repository"
	fluentdRepo "voxrelay/internal/database/fluentd/repository"
	"voxrelay/internal/service"
	"voxrelay/internal/telemetry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, conf *config.Configuration) *SecretHandler {
	t.Helper()
	if conf.Storage.Dir == "" {
		conf.Storage.Dir = t.TempDir()
	}
	secretService := service.NewSecretService(
		conf,
		service.NewSecretStore(conf, fileRepo.NewSecretRepository(conf), nil),
		service.NewLocalLocker(),
		fluentdRepo.NewLogRepository(conf, nil),
		&telemetry.Trace{},
		&telemetry.Metric{},
		zap.NewNop(),
	)
	return NewSecretHandler(zap.NewNop(), conf, secretService)
}

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetContext(context.Background())
	return cmd, out
}

func TestSecretSetShowClear(t *testing.T) {
	handler := newTestHandler(t, &config.Configuration{})

	cmd, out := newTestCommand()
	if err := handler.Show(cmd, nil); err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if !strings.Contains(out.String(), "not configured") {
		t.Errorf("Show() output = %q", out.String())
	}

	cmd, out = newTestCommand()
	if err := handler.Set(cmd, []string{"sk-test-1234567890"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if strings.Contains(out.String(), "sk-test-1234567890") {
		t.Errorf("Set() leaked the key: %q", out.String())
	}

	cmd, out = newTestCommand()
	if err := handler.Show(cmd, nil); err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if !strings.Contains(out.String(), "source:    storage") {
		t.Errorf("Show() output = %q", out.String())
	}

	cmd, out = newTestCommand()
	if err := handler.Clear(cmd, nil); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if strings.TrimSpace(out.String()) != "stored key cleared" {
		t.Errorf("Clear() output = %q", out.String())
	}
}

func TestSecretSetRejectsBlank(t *testing.T) {
	handler := newTestHandler(t, &config.Configuration{})
	cmd, _ := newTestCommand()
	if err := handler.Set(cmd, []string{"   "}); err == nil {
		t.Fatal("expected error for blank key")
	}
}

func TestSecretVerify(t *testing.T) {
	var gotAuth string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"whisper-1","object":"model"},{"id":"gpt-4o-mini","object":"model"}]}`))
	}))
	defer upstream.Close()

	handler := newTestHandler(t, &config.Configuration{
		OpenAI: config.OpenAI{APIKey: "sk-env", BaseURL: upstream.URL + "/v1/"},
	})
	cmd, out := newTestCommand()
	if err := handler.Verify(cmd, nil); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if gotAuth != "Bearer sk-env" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if !strings.Contains(out.String(), "2 models") {
		t.Errorf("Verify() output = %q", out.String())
	}
}

func TestSecretVerifyWithoutKey(t *testing.T) {
	handler := newTestHandler(t, &config.Configuration{})
	cmd, _ := newTestCommand()
	if err := handler.Verify(cmd, nil); err == nil {
		t.Fatal("expected configuration error")
	}
}
