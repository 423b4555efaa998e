package state

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// NoteState represents a note created by weeknote
type NoteState struct {
	Created time.Time `json:"created"`
	MTime   int64     `json:"mtime"`
	Hash    string    `json:"hash"`
	Initial string    `json:"initial,omitempty"`
}

// State is the history of created notes, keyed by vault path
type State struct {
	Notes map[string]*NoteState `json:"notes"`
}

// NewState creates a new empty state
func NewState() *State {
	return &State{
		Notes: make(map[string]*NoteState),
	}
}

// Load reads state from the state file
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	if state.Notes == nil {
		state.Notes = make(map[string]*NoteState)
	}

	return &state, nil
}

// Save writes state to the state file
func (s *State) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// Record stores the mtime, hash and content of a newly created note
func (s *State) Record(notePath, absPath string, created time.Time) error {
	info, err := os.Stat(absPath)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return err
	}

	s.Notes[notePath] = &NoteState{
		Created: created,
		MTime:   info.ModTime().Unix(),
		Hash:    hashBytes(content),
		Initial: string(content),
	}

	return nil
}

func hashBytes(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}

// Tracked reports whether notePath was created by weeknote
func (s *State) Tracked(notePath string) bool {
	_, ok := s.Notes[notePath]
	return ok
}

// HasChanged checks if a note was edited since it was created
// Uses hybrid mtime + hash approach
func (s *State) HasChanged(notePath, absPath string) (bool, error) {
	info, err := os.Stat(absPath)
	if err != nil {
		return false, err
	}

	noteState, exists := s.Notes[notePath]
	if !exists {
		// Not created by us, nothing to compare against
		return true, nil
	}

	// Fast path: check mtime first
	if info.ModTime().Unix() == noteState.MTime {
		return false, nil
	}

	// mtime changed, compute hash to check for actual content changes
	hash, err := ComputeHash(absPath)
	if err != nil {
		return false, err
	}

	return hash != noteState.Hash, nil
}
