// Package state owns the live bot settings, collection counters, and the
// pending-identification slot. Every mutation is persisted through an
// atomic file replace before the mutator returns, so a crash never loses
// more than the in-flight change.
package state

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/model"
	"github.com/notyourtaha/Auto-Claim-Back-up/pkg/atomicfile"
)

// PendingIdentification is the single-slot context for the most recent
// creature spawn awaiting a name from the owner. A new spawn overwrites it;
// losing the older context is accepted.
type PendingIdentification struct {
	ChatID       string
	Image        []byte
	OriginalText string
}

// Store is the mutex-guarded application state aggregate.
type Store struct {
	mu       sync.Mutex
	path     string
	settings model.Settings
	pending  *PendingIdentification
}

// New loads settings from path. A missing file yields defaults; a corrupt
// file logs, resets to defaults, and lets startup continue.
func New(path string, defaultMode model.Mode) *Store {
	s := &Store{
		path:     path,
		settings: model.DefaultSettings(defaultMode),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("[State] %s not found, starting with default settings", path)
		return s
	}
	if err != nil {
		log.Printf("[State] Error reading %s, using default settings: %v", path, err)
		return s
	}

	var loaded model.Settings
	if err := json.Unmarshal(data, &loaded); err != nil {
		log.Printf("[State] Corrupt settings file %s, resetting to defaults: %v", path, err)
		return s
	}

	if !model.ValidMode(string(loaded.Mode)) {
		loaded.Mode = s.settings.Mode
	}
	if loaded.CardOverrides == nil {
		loaded.CardOverrides = map[string]bool{}
	}
	if loaded.CreatureOverrides == nil {
		loaded.CreatureOverrides = map[string]bool{}
	}
	s.settings = loaded
	log.Printf("[State] Loaded settings: mode=%s cards=%v creatures=%v success=%d failed=%d",
		loaded.Mode, loaded.CardGlobal, loaded.CreatureGlobal, loaded.SuccessCount, loaded.FailureCount)
	return s
}

// persist writes the settings file. Callers must hold s.mu. A write failure
// is logged and the in-memory state kept; the bot continues degraded.
func (s *Store) persist() {
	data, err := json.MarshalIndent(s.settings, "", "  ")
	if err != nil {
		log.Printf("[State] Error serializing settings: %v", err)
		return
	}
	if err := atomicfile.WriteFile(s.path, data); err != nil {
		log.Printf("[State] Error saving settings: %v", err)
	}
}

// Settings returns a deep copy of the current settings.
func (s *Store) Settings() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Clone()
}

// Mode returns the operational mode.
func (s *Store) Mode() model.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Mode
}

// SetMode updates the operational mode.
func (s *Store) SetMode(m model.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Mode = m
	s.persist()
}

// CardEnabled resolves the card-collection policy for a chat: a group
// override wins over the global flag.
func (s *Store) CardEnabled(chatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.settings.CardOverrides[chatID]; ok {
		return v
	}
	return s.settings.CardGlobal
}

// CreatureEnabled resolves the creature-collection policy for a chat.
func (s *Store) CreatureEnabled(chatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.settings.CreatureOverrides[chatID]; ok {
		return v
	}
	return s.settings.CreatureGlobal
}

// SetCardGlobal sets the global card flag. Setting a global value is a
// reset: all card group overrides are cleared.
func (s *Store) SetCardGlobal(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.CardGlobal = enabled
	s.settings.CardOverrides = map[string]bool{}
	s.persist()
}

// SetCardOverride sets a per-chat card override.
func (s *Store) SetCardOverride(chatID string, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.CardOverrides[chatID] = enabled
	s.persist()
}

// SetCreatureGlobal sets the global creature flag and clears its overrides.
func (s *Store) SetCreatureGlobal(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.CreatureGlobal = enabled
	s.settings.CreatureOverrides = map[string]bool{}
	s.persist()
}

// SetCreatureOverride sets a per-chat creature override.
func (s *Store) SetCreatureOverride(chatID string, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.CreatureOverrides[chatID] = enabled
	s.persist()
}

// RecordSuccess increments and persists the success counter.
func (s *Store) RecordSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.SuccessCount++
	s.persist()
}

// RecordFailure increments and persists the failure counter.
func (s *Store) RecordFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.FailureCount++
	s.persist()
}

// Counters returns the success and failure counts.
func (s *Store) Counters() (success, failure int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.SuccessCount, s.settings.FailureCount
}

// ResetCounters zeroes both counters. Only the owner-triggered inventory
// clear calls this.
func (s *Store) ResetCounters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.SuccessCount = 0
	s.settings.FailureCount = 0
	s.persist()
}

// SetPending stores the latest creature spawn context, replacing any
// earlier unconsumed one.
func (s *Store) SetPending(p PendingIdentification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &p
}

// Pending returns a copy of the current context without consuming it, or
// nil when none exists.
func (s *Store) Pending() *PendingIdentification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil
	}
	p := *s.pending
	return &p
}

// TakePending consumes and returns the current context, or nil.
func (s *Store) TakePending() *PendingIdentification {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.pending
	s.pending = nil
	return p
}
