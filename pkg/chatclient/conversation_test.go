package chatclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newChatServer(t *testing.T, handler func(w http.ResponseWriter, req ChatRequest)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != chatPath || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req ChatRequest
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		handler(w, req)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestConversationSend_Resolved(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []ChatRequest
	)
	server := newChatServer(t, func(w http.ResponseWriter, req ChatRequest) {
		mu.Lock()
		calls = append(calls, req)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"gpt-4o-mini","choices":[{"message":{"content":"hello"}}]}`))
	})

	conv := NewConversation(context.Background(), New(server.URL))
	defer conv.Close()

	msg, err := conv.Send(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if msg.Status != StatusResolved || msg.Text != "hello" || msg.Role != RoleAssistant {
		t.Errorf("Send() = %+v", msg)
	}
	if msg.Meta["model"] != "gpt-4o-mini" {
		t.Errorf("Meta = %v", msg.Meta)
	}

	if _, err := conv.Send(context.Background(), "again"); err != nil {
		t.Fatalf("second Send() error = %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 2 {
		t.Fatalf("calls = %d", len(calls))
	}
	// 第二次帶上前一輪的 user / assistant
	second := calls[1].Messages
	if len(second) != 3 || second[0].Content != "hi" || second[1].Content != "hello" || second[2].Content != "again" {
		t.Errorf("history = %+v", second)
	}

	messages := conv.Messages()
	if len(messages) != 4 {
		t.Fatalf("messages = %d, want 4", len(messages))
	}
	if messages[0].Role != RoleUser || messages[0].Status != StatusNone {
		t.Errorf("user message = %+v", messages[0])
	}
	if conv.Pending() {
		t.Error("no request should be pending")
	}
}

func TestConversationSend_ErrorMirroredToBanner(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	server := newChatServer(t, func(w http.ResponseWriter, req ChatRequest) {
		w.Header().Set("Content-Type", "application/json")
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"OpenAI API key is not configured.","type":"configuration-error"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	})

	conv := NewConversation(context.Background(), New(server.URL))
	defer conv.Close()

	msg, err := conv.Send(context.Background(), "hi")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("Send() error = %v", err)
	}
	if msg.Status != StatusError || msg.Text != "OpenAI API key is not configured." {
		t.Errorf("Send() = %+v", msg)
	}
	if conv.Banner() != msg.Text {
		t.Errorf("Banner() = %q", conv.Banner())
	}

	// 下一次送出清除 banner，失敗的訊息不進入 history
	fail.Store(false)
	if _, err := conv.Send(context.Background(), "retry"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if conv.Banner() != "" {
		t.Errorf("Banner() = %q, want cleared", conv.Banner())
	}
}

func TestConversationSend_Empty(t *testing.T) {
	conv := NewConversation(context.Background(), New("http://127.0.0.1:0"))
	defer conv.Close()
	if _, err := conv.Send(context.Background(), "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("Send() error = %v, want ErrEmptyMessage", err)
	}
	if len(conv.Messages()) != 0 {
		t.Error("empty message should not change state")
	}
}

func TestConversationClose_DiscardsInFlight(t *testing.T) {
	started := make(chan struct{})
	server := newChatServer(t, func(w http.ResponseWriter, req ChatRequest) {
		close(started)
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"late"}}]}`))
	})

	conv := NewConversation(context.Background(), New(server.URL))
	done := make(chan error, 1)
	go func() {
		_, err := conv.Send(context.Background(), "hi")
		done <- err
	}()

	<-started
	conv.Close()

	select {
	case err := <-done:
		if !errors.Is(err, ErrClosed) {
			t.Fatalf("Send() error = %v, want ErrClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Send did not return after Close")
	}
	for _, m := range conv.Messages() {
		if m.Text == "late" {
			t.Fatal("late result should be discarded")
		}
	}
	if _, err := conv.Send(context.Background(), "after"); !errors.Is(err, ErrClosed) {
		t.Errorf("Send after Close error = %v", err)
	}
}

func TestClientProxyTokenHeader(t *testing.T) {
	var got atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get("X-Proxy-Token"))
		_, _ = w.Write([]byte(`{"openaiConfigured":true,"source":"environment","message":"ok","timestamp":"2025-01-01T00:00:00Z"}`))
	}))
	defer server.Close()

	status, err := New(server.URL, WithProxyToken("shared")).Status(context.Background())
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if got.Load() != "shared" {
		t.Errorf("X-Proxy-Token = %v", got.Load())
	}
	if !status.OpenAIConfigured || status.Source == nil || *status.Source != "environment" {
		t.Errorf("Status() = %+v", status)
	}
}
