package service_test

import (
	"io"
	"log/slog"
	"sync"
)

// mutableLimit is a service.LimitSource whose value can change between calls.
type mutableLimit struct {
	mu    sync.Mutex
	value int
}

func (l *mutableLimit) APIKeyLimit() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value
}

func (l *mutableLimit) set(v int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.value = v
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
