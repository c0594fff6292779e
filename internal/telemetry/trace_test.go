package telemetry

import (
	"context"
	"errors"
	"testing"

	"voxrelay/internal/core"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingTrace() (*Trace, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return &Trace{TracerProvider: provider, ServiceName: "voxrelay-test"}, recorder
}

func TestPrettifyFuncName(t *testing.T) {
	cases := map[string]string{
		"voxrelay/internal/service.(*SecretService).Resolve":            "SecretService.Resolve",
		"voxrelay/internal/handler.(*SettingsHandler).Update-fm":        "SettingsHandler.Update",
		"voxrelay/internal/cron/job.(*SecretProbe).Run.func1":           "SecretProbe.Run",
		"voxrelay/internal/service.(*Registry[...]).Chat":               "Registry.Chat",
		"voxrelay/internal/service/upstream.NewForwarder":               "NewForwarder",
		"voxrelay/internal/service/upstream.(*Forwarder).Forward.func2": "Forwarder.Forward",
	}
	for in, want := range cases {
		if got := prettifyFuncName(in); got != want {
			t.Errorf("prettifyFuncName(%q) = %q, want %q", in, got, want)
		}
	}
}

func resolveLike(tr *Trace, ctx context.Context) {
	_, _, end := tr.WithSpan(ctx)
	end(nil)
}

func TestWithSpan_NamesFromCaller(t *testing.T) {
	tr, recorder := newRecordingTrace()
	resolveLike(tr, context.Background())

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d", len(spans))
	}
	if got := spans[0].Name(); got != "resolveLike" {
		t.Errorf("span name = %q", got)
	}
}

func TestWithSpan_RecordsError(t *testing.T) {
	tr, recorder := newRecordingTrace()
	_, _, end := tr.WithSpan(context.Background(), string(core.SpanSecretResolve))
	end(errors.New("boom"))

	span := recorder.Ended()[0]
	if span.Name() != string(core.SpanSecretResolve) {
		t.Errorf("span name = %q", span.Name())
	}
	if span.Status().Code != codes.Error || span.Status().Description != "boom" {
		t.Errorf("status = %+v", span.Status())
	}
}

func TestApplyTraceAttributes(t *testing.T) {
	type inner struct {
		Model string `trace:"upstream.model"`
	}
	type meta struct {
		Endpoint string            `trace:"guard.endpoint"`
		Status   int               `trace:"http.status"`
		Elapsed  float64           `trace:"elapsed"`
		Allowed  bool              `trace:"allowed"`
		Methods  []string          `trace:"methods"`
		Headers  map[string]string `trace:"headers"`
		Nested   *inner            `trace:"nested"`
		Skipped  string
		hidden   string `trace:"hidden"`
	}

	tr, recorder := newRecordingTrace()
	_, span, end := tr.WithSpan(context.Background(), "attrs")
	tr.ApplyTraceAttributes(span, meta{
		Endpoint: "transcribe",
		Status:   401,
		Elapsed:  1.5,
		Allowed:  true,
		Methods:  []string{"POST", "OPTIONS"},
		Headers:  map[string]string{"content-type": "application/json"},
		Nested:   &inner{Model: "whisper-1"},
		Skipped:  "x",
		hidden:   "y",
	})
	end(nil)

	got := map[attribute.Key]attribute.Value{}
	for _, kv := range recorder.Ended()[0].Attributes() {
		got[kv.Key] = kv.Value
	}
	checks := map[attribute.Key]string{
		"guard.endpoint":       "transcribe",
		"http.status":          "401",
		"elapsed":              "1.5",
		"allowed":              "true",
		"methods":              `["POST","OPTIONS"]`,
		"headers.content-type": "application/json",
		"upstream.model":       "whisper-1",
	}
	for key, want := range checks {
		v, ok := got[key]
		if !ok {
			t.Errorf("missing attribute %q", key)
			continue
		}
		if v.Emit() != want {
			t.Errorf("%s = %q, want %q", key, v.Emit(), want)
		}
	}
	if _, ok := got["hidden"]; ok {
		t.Error("unexported field should be skipped")
	}
	if len(got) != len(checks) {
		t.Errorf("attributes = %v", got)
	}
}

func TestNoopTrace(t *testing.T) {
	tr := &Trace{}
	ctx, span, end := tr.WithSpan(context.Background())
	if ctx == nil || span == nil {
		t.Fatal("noop span expected")
	}
	tr.ApplyTraceAttributes(span, struct {
		A string `trace:"a"`
	}{"x"})
	end(errors.New("ignored"))
}
