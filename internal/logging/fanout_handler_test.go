package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestTeeHandlerDropsNil(t *testing.T) {
	if _, ok := TeeHandler(nil, nil).(discardHandler); !ok {
		t.Fatal("expected discard handler when every handler is nil")
	}
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := TeeHandler(nil, inner); h != inner {
		t.Fatal("expected single handler to be returned unwrapped")
	}
}

func TestTeeHandlerRespectsLevels(t *testing.T) {
	var infoBuf, warnBuf bytes.Buffer
	h := TeeHandler(
		slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug to be disabled")
	}

	slog.New(h).Info("info message")
	if infoBuf.Len() == 0 {
		t.Fatal("expected info output")
	}
	if warnBuf.Len() != 0 {
		t.Fatal("expected warn handler to skip info record")
	}
}

func TestTeeHandlerPropagatesAttrsAndGroups(t *testing.T) {
	var first, second bytes.Buffer
	h := TeeHandler(slog.NewJSONHandler(&first, nil), slog.NewJSONHandler(&second, nil))
	logger := slog.New(h).With(slog.String("run_id", "abc")).WithGroup("track")
	logger.Info("test", slog.String("title", "Calm Down"))

	for _, buf := range []*bytes.Buffer{&first, &second} {
		if !bytes.Contains(buf.Bytes(), []byte(`"run_id":"abc"`)) {
			t.Fatalf("expected run_id attribute, got %s", buf.String())
		}
		if !bytes.Contains(buf.Bytes(), []byte(`"track":{"title":"Calm Down"}`)) {
			t.Fatalf("expected grouped attribute, got %s", buf.String())
		}
	}
}
