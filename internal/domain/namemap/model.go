package namemap

import (
	"time"
)

// Entry is a verified mapping from a player identity to the localized
// display name.
type Entry struct {
	NameEN    string `validate:"required"`
	BirthDate string `validate:"required,datetime=2006-01-02"`
	NameJA    string `validate:"required"`
	Source    string
	UpdatedAt time.Time
}

// Reason classifies a failed external lookup.
type Reason string

const (
	ReasonNotFound  Reason = "notfound"
	ReasonAmbiguous Reason = "ambiguous"
	ReasonNoJA      Reason = "no_ja"
	ReasonAPIError  Reason = "api_error"
)

// ParseReason returns the reason for a persisted value. Unknown values are
// treated as api_error so they never suppress a retry.
func ParseReason(raw string) Reason {
	switch Reason(raw) {
	case ReasonNotFound, ReasonAmbiguous, ReasonNoJA, ReasonAPIError:
		return Reason(raw)
	default:
		return ReasonAPIError
	}
}

// Failure records the last failed lookup for a canonical key.
type Failure struct {
	Key       string
	Reason    Reason
	CheckedAt time.Time
}

// Suppresses reports whether the failure still blocks a new lookup at now.
// api_error never does, and neither does a failure without a timestamp.
func (f Failure) Suppresses(now time.Time, cooldown time.Duration) bool {
	if f.Reason == ReasonAPIError || f.CheckedAt.IsZero() {
		return false
	}
	return now.Sub(f.CheckedAt) < cooldown
}
