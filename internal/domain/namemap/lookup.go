package namemap

import "context"

// Candidate is one identity returned by the external lookup service.
type Candidate struct {
	ID        string
	LabelEN   string
	LabelJA   string
	BirthDate string
}

// Lookup queries an external identity service by English name and birth
// date.
type Lookup interface {
	LookupPlayer(ctx context.Context, name, birthDate string) ([]Candidate, error)
}

// Classify turns a lookup result into a localized name or a failure reason.
// Candidates sharing an ID count once.
func Classify(candidates []Candidate) (nameJA string, reason Reason, ok bool) {
	seen := make(map[string]struct{}, len(candidates))
	distinct := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.ID != "" {
			if _, dup := seen[c.ID]; dup {
				continue
			}
			seen[c.ID] = struct{}{}
		}
		distinct = append(distinct, c)
	}

	switch {
	case len(distinct) == 0:
		return "", ReasonNotFound, false
	case len(distinct) > 1:
		return "", ReasonAmbiguous, false
	case distinct[0].LabelJA == "":
		return "", ReasonNoJA, false
	default:
		return distinct[0].LabelJA, "", true
	}
}
