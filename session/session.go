// Package session guards a TP-Link router's single admin session slot.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Authenticator is the slice of the router API the session manager needs.
type Authenticator interface {
	Login(ctx context.Context) (string, error)
	Logout(ctx context.Context, token string) error
}

// Manager caches the session token and serializes logins. At most one login
// runs at a time; concurrent callers of Ensure share the token obtained by
// whichever call got there first.
type Manager struct {
	mu    sync.Mutex
	auth  Authenticator
	token string
	log   zerolog.Logger
}

func New(auth Authenticator, logger zerolog.Logger) *Manager {
	return &Manager{auth: auth, log: logger}
}

// Ensure returns the current session token, logging in first if there is
// none. The lock is held across the login call so a concurrent Ensure waits
// for the in-flight login instead of opening a second admin session.
func (m *Manager) Ensure(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" {
		return m.token, nil
	}

	m.log.Debug().Msg("no session token, logging in")
	token, err := m.auth.Login(ctx)
	if err != nil {
		return "", err
	}
	m.token = token
	return token, nil
}

// Invalidate drops the cached token without contacting the router. The next
// Ensure logs in again.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token != "" {
		m.log.Debug().Msg("invalidating session token")
		m.token = ""
	}
}

// Authenticated reports whether a session token is currently held.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != ""
}

// Release logs out of the router and drops the token, freeing the admin
// slot for other clients. Safe to call without an active session.
func (m *Manager) Release(ctx context.Context) error {
	m.mu.Lock()
	token := m.token
	m.token = ""
	m.mu.Unlock()

	if token == "" {
		return nil
	}
	return m.auth.Logout(ctx, token)
}
