// Package session persists small pieces of viewer state between runs,
// stored as JSON under the XDG state directory. Unknown keys in the file
// are preserved across updates.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const stateRelPath = "diffscope/session.json"

// State is the remembered viewer state.
type State struct {
	// Encoding is the last charset chosen for built patches.
	Encoding string

	// HexPreview records whether the hex panel was open.
	HexPreview bool

	// StagedView records whether the staged diff was shown.
	StagedView bool
}

// Store reads and writes session state at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store at the default XDG state location.
func NewStore() (*Store, error) {
	path, err := xdg.StateFile(stateRelPath)
	if err != nil {
		return nil, fmt.Errorf("resolve state path: %w", err)
	}
	return &Store{path: path}, nil
}

// NewStoreAt creates a store at an explicit path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Load reads the saved state. A missing or unreadable file yields the
// zero state; session data is never required.
func (s *Store) Load() State {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return State{}
	}

	return State{
		Encoding:   gjson.GetBytes(raw, "encoding").String(),
		HexPreview: gjson.GetBytes(raw, "hexPreview").Bool(),
		StagedView: gjson.GetBytes(raw, "stagedView").Bool(),
	}
}

// Save writes the state, updating keys in place so fields written by
// other versions survive.
func (s *Store) Save(st State) error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		raw = []byte("{}")
	}

	for _, kv := range []struct {
		key string
		val any
	}{
		{"encoding", st.Encoding},
		{"hexPreview", st.HexPreview},
		{"stagedView", st.StagedView},
	} {
		raw, err = sjson.SetBytes(raw, kv.key, kv.val)
		if err != nil {
			return fmt.Errorf("set session key %s: %w", kv.key, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}
