package moderation

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"hollowbot/pkg/chat"
)

// Store holds the set of muted identities and mirrors it to a single file.
//
// The file is a JSON array of identity strings; the full set is rewritten
// after every mutation. Mutation frequency is low, so correctness beats
// throughput here. Ordering of dispatch serializes access; the store itself
// takes no locks.
type Store struct {
	path string
	ids  []chat.Identity
	log  *slog.Logger
}

// NewStore creates a store persisting to path. An empty path keeps the set
// memory-only, which the tests use for isolation.
func NewStore(path string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}

	return &Store{
		path: path,
		log:  log.With("component", "moderation.store"),
	}
}

// Load reads the persisted set. A missing or unreadable file and malformed
// content all yield an empty set; failures are logged, never returned —
// moderation must come up even with degraded durability.
func (s *Store) Load() {
	s.ids = nil
	if s.path == "" {
		return
	}

	content, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("Could not read muted list, starting empty", "path", s.path, "error", err)
		}
		return
	}

	var raw []string
	if err := json.Unmarshal(content, &raw); err != nil {
		s.log.Warn("Could not parse muted list, starting empty", "path", s.path, "error", err)
		return
	}

	for _, value := range raw {
		id := chat.Identity(value)
		if id == "" || s.Contains(id) {
			continue
		}
		s.ids = append(s.ids, id)
	}
}

// Contains reports whether id is muted.
func (s *Store) Contains(id chat.Identity) bool {
	return slices.Contains(s.ids, id)
}

// Add mutes id and persists the whole set. The in-memory mutation stands
// even when persistence fails.
func (s *Store) Add(id chat.Identity) {
	if id == "" || s.Contains(id) {
		return
	}

	s.ids = append(s.ids, id)
	s.save()
}

// Remove unmutes id and persists the whole set.
func (s *Store) Remove(id chat.Identity) {
	index := slices.Index(s.ids, id)
	if index < 0 {
		return
	}

	s.ids = slices.Delete(s.ids, index, index+1)
	s.save()
}

// List returns the muted identities in stable (insertion) order.
func (s *Store) List() []chat.Identity {
	if len(s.ids) == 0 {
		return nil
	}

	out := make([]chat.Identity, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of muted identities.
func (s *Store) Len() int {
	return len(s.ids)
}

func (s *Store) save() {
	if s.path == "" {
		return
	}

	raw := make([]string, 0, len(s.ids))
	for _, id := range s.ids {
		raw = append(raw, string(id))
	}

	content, err := json.Marshal(raw)
	if err != nil {
		s.log.Error("Could not encode muted list", "error", err)
		return
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.log.Error("Could not create muted list directory", "path", dir, "error", err)
			return
		}
	}

	if err := os.WriteFile(s.path, content, 0o600); err != nil {
		s.log.Error("Could not save muted list", "path", s.path, "error", err)
	}
}
