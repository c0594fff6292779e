package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voxrelay/internal/core"
	cErr "voxrelay/internal/pkg/error"
	"voxrelay/internal/telemetry"

	"github.com/andybalholm/brotli"
	"go.uber.org/zap"
)

func newTestForwarder(client *http.Client) *Forwarder {
	return NewForwarder(client, &telemetry.Trace{}, &telemetry.Metric{}, zap.NewNop())
}

func TestForwarder_Success(t *testing.T) {
	var gotAuth, gotType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	resp, err := newTestForwarder(server.Client()).Do(context.Background(), Request{
		Endpoint:    core.EndpointChat,
		URL:         server.URL,
		APIKey:      "sk-test",
		ContentType: "application/json",
		Body:        strings.NewReader(`{}`),
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotType != "application/json" {
		t.Errorf("Content-Type = %q", gotType)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Errorf("body = %s", resp.Body)
	}
}

func TestForwarder_UpstreamErrorPassthrough(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantBody string
	}{
		{"json body kept", http.StatusTooManyRequests, `{"error":{"message":"slow down"}}`, `{"error":{"message":"slow down"}}`},
		{"text body wrapped", http.StatusBadGateway, "  bad gateway from edge \n", `{"error":{"message":"bad gateway from edge"}}`},
		{"empty body uses status text", http.StatusServiceUnavailable, "", `{"error":{"message":"Service Unavailable"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestForwarder(server.Client()).Do(context.Background(), Request{
				Endpoint: core.EndpointTranscribe,
				URL:      server.URL,
				APIKey:   "sk",
			})
			var e *cErr.Error
			if !errors.As(err, &e) {
				t.Fatalf("expected *cErr.Error, got %v", err)
			}
			if e.HttpCode() != tt.status {
				t.Errorf("status = %d, want %d", e.HttpCode(), tt.status)
			}
			if string(e.Body()) != tt.wantBody {
				t.Errorf("body = %s, want %s", e.Body(), tt.wantBody)
			}
		})
	}
}

func TestForwarder_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestForwarder(http.DefaultClient).Do(context.Background(), Request{
		Endpoint: core.EndpointChat,
		URL:      url,
		APIKey:   "sk",
	})
	e := cErr.From(err)
	if e == nil {
		t.Fatalf("expected *cErr.Error, got %v", err)
	}
	if e.HttpCode() != http.StatusInternalServerError {
		t.Errorf("status = %d", e.HttpCode())
	}
	if e.ErrorDesc() != core.UpstreamUnavailableMessage {
		t.Errorf("desc = %q", e.ErrorDesc())
	}
}

func TestForwarder_DecodesBrotli(t *testing.T) {
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	_, _ = bw.Write([]byte(`{"text":"hi"}`))
	_ = bw.Close()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		_, _ = w.Write(buf.Bytes())
	}))
	defer server.Close()

	resp, err := newTestForwarder(server.Client()).Do(context.Background(), Request{
		Endpoint: core.EndpointTranscribe,
		URL:      server.URL,
		APIKey:   "sk",
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(resp.Body, &got); err != nil || got["text"] != "hi" {
		t.Fatalf("body = %s, err = %v", resp.Body, err)
	}
}
