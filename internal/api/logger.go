package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// slogFormatter routes chi request logs through the default slog logger.
type slogFormatter struct{}

func (slogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &slogEntry{
		method:    r.Method,
		path:      r.URL.Path,
		remote:    r.RemoteAddr,
		requestID: middleware.GetReqID(r.Context()),
	}
}

type slogEntry struct {
	method, path, remote, requestID string
}

func (e *slogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ any) {
	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(context.Background(), level, "http request",
		"method", e.method,
		"path", e.path,
		"status", status,
		"bytes", bytes,
		"elapsed", elapsed,
		"remote", e.remote,
		"request_id", e.requestID,
	)
}

func (e *slogEntry) Panic(v any, stack []byte) {
	slog.Error("http handler panic",
		"method", e.method,
		"path", e.path,
		"panic", v,
		"stack", string(stack),
	)
}
