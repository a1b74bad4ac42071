package gologger

import (
	"context"
	"errors"
	"maps"
	"testing"

	glog "github.com/goliatone/go-logger/glog"
)

func TestNewProviderRejectsUnknownFormat(t *testing.T) {
	_, err := NewProvider(Config{Format: "xml"})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestNewProviderBuildsModuleLoggers(t *testing.T) {
	p, err := NewProvider(Config{Level: "debug", Format: "console"})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}

	logger := p.GetLogger("cms.api")
	if logger == nil {
		t.Fatal("expected logger, got nil")
	}
	child := logger.WithContext(context.Background())
	child.Debug("api.provider.ready")
}

func TestAdapterClonesFields(t *testing.T) {
	stub := &stubLogger{}
	adapted := wrap(stub).(*adapter)

	fields := map[string]any{"route": "/posts"}
	child := adapted.WithFields(fields)
	if child == nil {
		t.Fatal("expected WithFields to return logger")
	}
	fields["route"] = "/pages"
	if len(stub.fields) != 1 || stub.fields[0]["route"] != "/posts" {
		t.Fatalf("expected cloned fields, got %v", stub.fields)
	}

	child.Info("info")
	child.Warn("warn")
	if len(stub.calls) != 2 || stub.calls[0] != "info" || stub.calls[1] != "warn" {
		t.Fatalf("unexpected delegated calls %v", stub.calls)
	}
}

func TestLevelsAcceptAliases(t *testing.T) {
	cases := map[string]string{
		"warning": glog.Warn,
		"warn":    glog.Warn,
		"debug":   glog.Debug,
	}
	for input, want := range cases {
		if got := levels[input]; got != want {
			t.Fatalf("levels[%q] = %q, want %q", input, got, want)
		}
	}
	if _, ok := levels["loud"]; ok {
		t.Fatal("expected unknown level to be absent")
	}

	options, err := buildOptions(Config{Level: " WARNING ", AddSource: true})
	if err != nil {
		t.Fatalf("buildOptions returned error: %v", err)
	}
	if len(options) != 3 {
		t.Fatalf("expected level, format and source options, got %d", len(options))
	}
}

type stubLogger struct {
	calls    []string
	fields   []map[string]any
	contexts []context.Context
}

var _ glog.Logger = (*stubLogger)(nil)
var _ glog.FieldsLogger = (*stubLogger)(nil)

func (s *stubLogger) Trace(string, ...any) { s.calls = append(s.calls, "trace") }
func (s *stubLogger) Debug(string, ...any) { s.calls = append(s.calls, "debug") }
func (s *stubLogger) Info(string, ...any)  { s.calls = append(s.calls, "info") }
func (s *stubLogger) Warn(string, ...any)  { s.calls = append(s.calls, "warn") }
func (s *stubLogger) Error(string, ...any) { s.calls = append(s.calls, "error") }
func (s *stubLogger) Fatal(string, ...any) { s.calls = append(s.calls, "fatal") }

func (s *stubLogger) WithContext(ctx context.Context) glog.Logger {
	s.contexts = append(s.contexts, ctx)
	return s
}

func (s *stubLogger) WithFields(fields map[string]any) glog.Logger {
	s.fields = append(s.fields, maps.Clone(fields))
	return s
}
