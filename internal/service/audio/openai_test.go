package audio

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"voxrelay/config"
	"voxrelay/internal/service/upstream"
	"voxrelay/internal/telemetry"

	"go.uber.org/zap"
)

func TestAudioTranscriptionsV1_RebuildsForm(t *testing.T) {
	type captured struct {
		fields      map[string]string
		filename    string
		contentType string
		content     string
	}
	var got captured
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse form: %v", err)
		}
		got.fields = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			got.fields[k] = v[0]
		}
		fh := r.MultipartForm.File["file"][0]
		got.filename = fh.Filename
		got.contentType = fh.Header.Get("Content-Type")
		f, _ := fh.Open()
		b, _ := io.ReadAll(f)
		got.content = string(b)
		_, _ = w.Write([]byte(`{"text":"hi","duration":1.25,"language":"en"}`))
	}))
	defer server.Close()

	conf := &config.Configuration{OpenAI: config.OpenAI{BaseURL: server.URL + "/v1"}}
	trace := &telemetry.Trace{}
	forwarder := upstream.NewForwarder(server.Client(), trace, &telemetry.Metric{}, zap.NewNop())
	svc := NewOpenAIService(trace, forwarder, conf)

	upload, err := NormalizeUpload(newFileHeader(t, "clip.opus", "", []byte("OggS-data")))
	if err != nil {
		t.Fatalf("NormalizeUpload() error = %v", err)
	}
	result, err := svc.AudioTranscriptionsV1(context.Background(), upload, Options{Language: "en"}, "sk-test")
	if err != nil {
		t.Fatalf("AudioTranscriptionsV1() error = %v", err)
	}

	if got.fields["model"] != config.DefaultTranscriptionModel {
		t.Errorf("model = %q", got.fields["model"])
	}
	if got.fields["response_format"] != "verbose_json" {
		t.Errorf("response_format = %q", got.fields["response_format"])
	}
	if got.fields["language"] != "en" {
		t.Errorf("language = %q", got.fields["language"])
	}
	if _, ok := got.fields["prompt"]; ok {
		t.Errorf("prompt should be omitted when empty")
	}
	if got.filename != "clip.opus" || got.contentType != "audio/ogg" || got.content != "OggS-data" {
		t.Errorf("file part = %+v", got)
	}
	if result.Text != "hi" || result.Duration == nil || *result.Duration != 1.25 || result.Language == nil || *result.Language != "en" {
		t.Errorf("result = %+v", result)
	}
}
