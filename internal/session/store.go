// Package session persists the browser authentication state captured by the
// interactive login flow so export runs can reuse it headlessly.
//
// The state is treated as opaque credentials: it is written once by the login
// command, read by every export run and never refreshed programmatically.
// Amazon invalidates it server-side at unknown times, at which point the next
// export run fails and the user has to log in again.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cookie is a single browser cookie in the persisted session state.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires,omitempty"` // seconds since epoch, 0 means session cookie
	HTTPOnly bool    `json:"http_only,omitempty"`
	Secure   bool    `json:"secure,omitempty"`
	SameSite string  `json:"same_site,omitempty"`
}

// State is the full persisted session. Validity is decided server-side,
// CapturedAt is informational only.
type State struct {
	CapturedAt time.Time `json:"captured_at"`
	Cookies    []Cookie  `json:"cookies"`
}

// Store reads and writes the session state file.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the persisted session state. Returns an error wrapping
// ErrNotFound when the login command has not been run yet.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w (expected at %s)", ErrNotFound, s.Path)
		}
		return nil, fmt.Errorf("failed to read session state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse session state %s: %w", s.Path, err)
	}

	return &state, nil
}

// Save writes the session state, creating the parent directory if needed.
// The file holds live Amazon credentials, hence the restrictive mode.
func (s *Store) Save(state *State) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}

	if err := os.WriteFile(s.Path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session state: %w", err)
	}

	return nil
}
