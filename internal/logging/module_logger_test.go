package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-cms-rest/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "cms.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerAnnotatesModuleField(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	APILogger(provider)

	if len(provider.requested) != 1 || provider.requested[0] != apiModule {
		t.Fatalf("expected module %s, got %v", apiModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != apiModule {
		t.Fatalf("expected module field %s, got %v", apiModule, rec.fields)
	}
}

func TestContextWithFieldsMerges(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"request_id": "a", "path": "/x"})
	ctx = ContextWithFields(ctx, map[string]any{"request_id": "b"})

	fields := ContextFields(ctx)
	if fields["request_id"] != "b" || fields["path"] != "/x" {
		t.Fatalf("unexpected merged fields %v", fields)
	}

	fields["path"] = "mutated"
	if ContextFields(ctx)["path"] != "/x" {
		t.Fatalf("expected ContextFields to return a copy")
	}
}

func TestFromContextAppliesFields(t *testing.T) {
	rec := &recordingLogger{}
	ctx := ContextWithFields(context.Background(), map[string]any{"request_id": "req-1"})

	FromContext(ctx, rec)

	if len(rec.contexts) != 1 {
		t.Fatalf("expected context propagation, got %d", len(rec.contexts))
	}
	if len(rec.fields) != 1 || rec.fields[0]["request_id"] != "req-1" {
		t.Fatalf("expected request_id field, got %v", rec.fields)
	}
}
