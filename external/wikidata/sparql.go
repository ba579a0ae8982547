package wikidata

import (
	"strings"

	"github.com/football-archive/pipeline/internal/domain/namemap"
)

type sparqlResponse struct {
	Results struct {
		Bindings []map[string]sparqlValue `json:"bindings"`
	} `json:"results"`
}

type sparqlValue struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Lang  string `json:"xml:lang"`
}

// candidates folds the result rows into one candidate per entity. An
// entity with several rows keeps the first non-empty label of each kind.
func (r sparqlResponse) candidates() []namemap.Candidate {
	out := make([]namemap.Candidate, 0, len(r.Results.Bindings))
	index := make(map[string]int, len(r.Results.Bindings))
	for _, row := range r.Results.Bindings {
		id := strings.TrimPrefix(row["item"].Value, entityPrefix)
		if id == "" {
			continue
		}
		dob := row["dob"].Value
		if len(dob) >= 10 {
			dob = dob[:10]
		}

		i, seen := index[id]
		if !seen {
			index[id] = len(out)
			out = append(out, namemap.Candidate{
				ID:        id,
				LabelEN:   row["labelEN"].Value,
				LabelJA:   row["labelJA"].Value,
				BirthDate: dob,
			})
			continue
		}
		if out[i].LabelEN == "" {
			out[i].LabelEN = row["labelEN"].Value
		}
		if out[i].LabelJA == "" {
			out[i].LabelJA = row["labelJA"].Value
		}
	}
	return out
}
