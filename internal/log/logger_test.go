package log

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLogger_TagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Component: ComponentStorage, Output: &buf})

	logger.InfoContext(context.Background(), "saved", FieldItemID, 7)
	logger.WithComponent(ComponentHTTP).With(FieldRequestID, "abc").WarnContext(context.Background(), "slow")

	out := buf.String()
	for _, want := range []string{
		"component=storage", "item_id=7", "msg=saved",
		"component=http", "request_id=abc", "level=WARN",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Output: &buf})
	logger.DebugContext(context.Background(), "hidden")
	logger.InfoContext(context.Background(), "hidden too")
	if buf.Len() != 0 {
		t.Errorf("unexpected output: %s", buf.String())
	}
	if logger.Component() != ComponentApp {
		t.Errorf("Component() = %q, want default", logger.Component())
	}
}

func TestMiddleware_InjectsLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf, Component: ComponentHTTP})

	var got *Logger
	h := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if got != logger {
		t.Error("FromContext did not return the injected logger")
	}
	if FromContext(context.Background()) == nil {
		t.Error("FromContext should fall back to the default logger")
	}
}
