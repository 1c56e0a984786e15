package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Session is the authenticated identity: the logged-in user and the bearer
// token sent on every protected request.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// SessionCache persists the last known session to a file, the way the web
// frontend keeps it in local storage. It is only a cache: the Client's live
// session is the source of truth, the file just survives restarts.
type SessionCache struct {
	path string
}

// NewSessionCache stores the session at path (parent directories are
// created on first save).
func NewSessionCache(path string) *SessionCache {
	return &SessionCache{path: path}
}

// Load returns the cached session, or (nil, nil) when none is cached.
func (c *SessionCache) Load() (*Session, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		// A corrupt cache is treated as no session rather than an error;
		// the user just has to log in again.
		return nil, nil
	}
	if s.Token == "" {
		return nil, nil
	}
	return &s, nil
}

// Save writes the session to the cache file (0600, tokens inside).
func (c *SessionCache) Save(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o600)
}

// Clear removes the cached session.
func (c *SessionCache) Clear() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
