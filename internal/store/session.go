package store

import (
	"context"
	"strings"
	"sync"
)

// SessionKey is the key under which the last logged-in username is kept.
const SessionKey = "userName"

// Session persists the username used for silent auto-login.
//
// Lifecycle: Init once before use, then any number of Read/Write/Clear calls, then Close.
// Read returns "" (and no error) when nothing is stored.
type Session interface {
	Init(ctx context.Context) error
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, userName string) error
	Clear(ctx context.Context) error
	Close() error
}

// MemorySession is a process-local Session, used by tests and --no-session runs.
type MemorySession struct {
	mu       sync.Mutex
	userName string
}

func NewMemorySession(initial string) *MemorySession {
	return &MemorySession{userName: strings.TrimSpace(initial)}
}

func (m *MemorySession) Init(ctx context.Context) error { return nil }

func (m *MemorySession) Read(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userName, nil
}

func (m *MemorySession) Write(ctx context.Context, userName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userName = strings.TrimSpace(userName)
	return nil
}

func (m *MemorySession) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userName = ""
	return nil
}

func (m *MemorySession) Close() error { return nil }
