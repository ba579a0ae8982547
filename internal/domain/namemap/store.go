// Package namemap is the name disambiguation store: verified localized names
// keyed by player identity, an alias index over every spelling variant and a
// cache of failed lookups.
package namemap

import (
	"fmt"
	"sort"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/football-archive/pipeline/internal/domain/player"
)

// AliasConflictError is returned in strict mode when an alias variant
// already points at a different canonical entry.
type AliasConflictError struct {
	Alias    string
	Existing string
	Incoming string
}

func (e *AliasConflictError) Error() string {
	return fmt.Sprintf("alias %q maps to %q, refusing %q", e.Alias, e.Existing, e.Incoming)
}

// Options configures a Store.
type Options struct {
	// Strict rejects upserts whose alias variants collide with another entry.
	Strict bool
}

// Store holds the name map for one run. It is constructed per batch and
// passed to whoever needs it.
type Store struct {
	mu       sync.RWMutex
	strict   bool
	validate *validator.Validate
	entries  map[string]Entry
	aliases  map[string]string
	failures map[string]Failure
}

func NewStore(opts Options) *Store {
	return &Store{
		strict:   opts.Strict,
		validate: validator.New(),
		entries:  make(map[string]Entry),
		aliases:  make(map[string]string),
		failures: make(map[string]Failure),
	}
}

// Load upserts persisted entries and failures. Unkeyable or invalid rows
// are skipped and counted; an alias conflict in strict mode aborts.
func (s *Store) Load(entries []Entry, failures []Failure) (skipped int, err error) {
	for _, e := range entries {
		if upsertErr := s.Upsert(e); upsertErr != nil {
			var conflict *AliasConflictError
			if crerr.As(upsertErr, &conflict) {
				return skipped, upsertErr
			}
			skipped++
		}
	}
	for _, f := range failures {
		key, ok := player.ParseKey(f.Key)
		if !ok {
			skipped++
			continue
		}
		s.RecordFailure(key, f.Reason, f.CheckedAt)
	}
	return skipped, nil
}

// Lookup returns the entry for a raw name and birth date, trying each alias
// variant in priority order.
func (s *Store) Lookup(name, birthDate string) (Entry, bool) {
	key := player.NewKey(name, birthDate)
	if !key.Valid() {
		return Entry{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, variant := range key.Variants() {
		if canonical, ok := s.aliases[variant]; ok {
			if entry, ok := s.entries[canonical]; ok {
				return entry, true
			}
		}
	}
	return Entry{}, false
}

// Upsert writes a verified entry and registers its alias variants. In
// lenient mode the last write for an alias wins. A successful upsert clears
// any cached failure for the key.
func (s *Store) Upsert(e Entry) error {
	key := player.NewKey(e.NameEN, e.BirthDate)
	e.NameEN = key.Name
	e.BirthDate = key.BirthDate
	if err := s.validate.Struct(e); err != nil {
		return crerr.Wrapf(err, "invalid name map entry %q", key.String())
	}

	canonical := key.String()
	variants := key.Variants()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.strict {
		for _, variant := range variants {
			if existing, ok := s.aliases[variant]; ok && existing != canonical {
				return &AliasConflictError{Alias: variant, Existing: existing, Incoming: canonical}
			}
		}
	}

	s.entries[canonical] = e
	for _, variant := range variants {
		s.aliases[variant] = canonical
	}
	delete(s.failures, canonical)
	return nil
}

// RecordFailure stores the latest failed lookup for key. Unkeyable keys are
// ignored.
func (s *Store) RecordFailure(key player.Key, reason Reason, checkedAt time.Time) {
	if !key.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[key.String()] = Failure{
		Key:       key.String(),
		Reason:    reason,
		CheckedAt: checkedAt,
	}
}

// Failure returns the cached failure for key.
func (s *Store) Failure(key player.Key) (Failure, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.failures[key.String()]
	return f, ok
}

// ShouldSkip reports whether a lookup for key is suppressed at now by a
// cached failure younger than cooldown.
func (s *Store) ShouldSkip(key player.Key, now time.Time, cooldown time.Duration) bool {
	f, ok := s.Failure(key)
	if !ok {
		return false
	}
	return f.Suppresses(now, cooldown)
}

// Entries returns every canonical entry sorted by key.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.entries[k])
	}
	return out
}

// Failures returns every cached failure sorted by key.
func (s *Store) Failures() []Failure {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Failure, 0, len(s.failures))
	for _, f := range s.failures {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
