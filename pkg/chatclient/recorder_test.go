package chatclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"voxrelay/internal/core"
)

type fakeSource struct {
	started  int
	released int
	startErr error
}

func (s *fakeSource) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	s.started++
	return nil
}

func (s *fakeSource) Stop() (Audio, error) {
	return Audio{Name: "clip.webm", MimeType: "audio/webm", Data: []byte("RIFFdata")}, nil
}

func (s *fakeSource) Release() error {
	s.released++
	return nil
}

func newRelayServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case transcribePath:
			file, header, err := r.FormFile("file")
			if err != nil {
				t.Errorf("FormFile: %v", err)
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			data, _ := io.ReadAll(file)
			if header.Filename != "clip.webm" || string(data) != "RIFFdata" {
				t.Errorf("upload = %s %q", header.Filename, data)
			}
			if ct := header.Header.Get("Content-Type"); ct != "audio/webm" {
				t.Errorf("part Content-Type = %q", ct)
			}
			_, _ = w.Write([]byte(`{"text":"turn on the lights","duration":1.5,"language":"en"}`))
		case chatPath:
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"done"}}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRecorderStopAndSend(t *testing.T) {
	server := newRelayServer(t)
	client := New(server.URL)
	conv := NewConversation(context.Background(), client)
	defer conv.Close()

	source := &fakeSource{}
	recorder := NewRecorder(source, client, conv)

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := recorder.Start(context.Background()); !errors.Is(err, ErrAlreadyRecording) {
		t.Fatalf("second Start() error = %v", err)
	}
	if recorder.State() != RecorderRecording {
		t.Fatalf("State() = %s", recorder.State())
	}

	msg, err := recorder.StopAndSend(context.Background())
	if err != nil {
		t.Fatalf("StopAndSend() error = %v", err)
	}
	if msg.Text != "done" || msg.Status != StatusResolved {
		t.Errorf("StopAndSend() = %+v", msg)
	}
	if recorder.State() != RecorderIdle {
		t.Errorf("State() = %s, want idle", recorder.State())
	}
	if source.released == 0 {
		t.Error("source was not released")
	}
	messages := conv.Messages()
	if len(messages) != 2 || messages[0].Text != "turn on the lights" {
		t.Errorf("messages = %+v", messages)
	}
}

func TestRecorderStopWithoutStart(t *testing.T) {
	recorder := NewRecorder(&fakeSource{}, New("http://127.0.0.1:0"), nil)
	if _, err := recorder.Stop(); !errors.Is(err, ErrNotRecording) {
		t.Fatalf("Stop() error = %v", err)
	}
}

func TestRecorderCancelReleases(t *testing.T) {
	source := &fakeSource{}
	recorder := NewRecorder(source, New("http://127.0.0.1:0"), nil)
	if err := recorder.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := recorder.Cancel(); err != nil {
		t.Fatal(err)
	}
	if recorder.State() != RecorderIdle || source.released != 1 {
		t.Errorf("state = %s released = %d", recorder.State(), source.released)
	}
	// 開始失敗也會釋放
	source.startErr = errors.New("permission denied")
	if err := recorder.Start(context.Background()); err == nil {
		t.Fatal("expected start error")
	}
	if source.released != 2 {
		t.Errorf("released = %d, want 2", source.released)
	}
}

func TestRecorderNoSpeechOnlySetsBanner(t *testing.T) {
	var chatCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case transcribePath:
			_, _ = w.Write([]byte(`{"text":"No speech was detected in the clip.","duration":0.4,"language":null}`))
		case chatPath:
			chatCalls.Add(1)
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"unexpected"}}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := New(server.URL)
	conv := NewConversation(context.Background(), client)
	defer conv.Close()
	recorder := NewRecorder(&fakeSource{}, client, conv)

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := recorder.StopAndSend(context.Background()); !errors.Is(err, ErrNoSpeech) {
		t.Fatalf("StopAndSend() error = %v, want ErrNoSpeech", err)
	}
	if n := chatCalls.Load(); n != 0 {
		t.Errorf("chat called %d times", n)
	}
	if len(conv.Messages()) != 0 {
		t.Errorf("messages = %+v, want none", conv.Messages())
	}
	if conv.Banner() != core.NoSpeechDetectedText {
		t.Errorf("Banner() = %q", conv.Banner())
	}
	if recorder.State() != RecorderIdle {
		t.Errorf("State() = %s", recorder.State())
	}
}
