// Package player holds the identity rules shared by every table that lists
// people: the canonical (name, birth date) key, its alias variants and the
// position category.
package player

import (
	"strings"

	"github.com/football-archive/pipeline/internal/platform/textnorm"
)

const keySeparator = "|"

var punctReplacer = strings.NewReplacer(
	"’", "'", "‘", "'", "`", "'", "´", "'", "ʼ", "'",
	"‐", "-", "‑", "-", "‒", "-", "–", "-", "—", "-",
	".", " ", ",", " ",
)

var loosenReplacer = strings.NewReplacer("-", " ", "'", " ")

// Key is the canonical identity of a player: the whitespace-normalized
// English name plus the ISO birth date.
type Key struct {
	Name      string
	BirthDate string
}

// NewKey normalizes both parts. The result may be unkeyable; check Valid.
func NewKey(name, birthDate string) Key {
	return Key{
		Name:      textnorm.Text(name),
		BirthDate: textnorm.Date(birthDate),
	}
}

// Valid reports whether both parts are present. Unkeyable rows never enter
// a lookup store.
func (k Key) Valid() bool {
	return k.Name != "" && k.BirthDate != ""
}

func (k Key) String() string {
	return k.Name + keySeparator + k.BirthDate
}

// ParseKey splits a persisted "name|YYYY-MM-DD" key.
func ParseKey(raw string) (Key, bool) {
	idx := strings.LastIndex(raw, keySeparator)
	if idx < 0 {
		return Key{}, false
	}
	key := NewKey(raw[:idx], raw[idx+1:])
	return key, key.Valid()
}

// Variants returns the alias index keys for k in lookup priority order.
func (k Key) Variants() []string {
	if !k.Valid() {
		return nil
	}
	names := NameVariants(k.Name)
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, name+keySeparator+k.BirthDate)
	}
	return out
}

// NameVariants returns the distinct renderings of a name used as alias keys:
// raw, punctuation-normalized, diacritic-folded, both, and the loosened
// (hyphen and apostrophe to space) form with its folded form. Raw comes
// first so an exact spelling always wins.
func NameVariants(name string) []string {
	raw := textnorm.Text(name)
	if raw == "" {
		return nil
	}

	punct := normalizePunct(raw)
	folded := textnorm.FoldDiacritics(raw)
	both := normalizePunct(folded)
	loose := textnorm.Text(loosenReplacer.Replace(punct))
	looseFolded := textnorm.FoldDiacritics(loose)

	candidates := []string{raw, punct, folded, both, loose, looseFolded}
	out := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func normalizePunct(s string) string {
	return textnorm.Text(strings.ToLower(punctReplacer.Replace(s)))
}
