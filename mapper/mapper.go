// Package mapper maps natural-language terms to ontology classes and
// properties. It reuses the query service's scoring rules, augmented with
// per-ontology synonym tables, so mapping and search rank candidates the
// same way.
package mapper

import (
	"fmt"
	"strings"

	"github.com/c360studio/ontograph/ontology"
	"github.com/c360studio/ontograph/query"
)

// Mapping is one term resolved to one ontology entity.
type Mapping struct {
	Term       string           `json:"term"`
	Matched    string           `json:"matched"`
	Kind       query.EntityKind `json:"kind"`
	IRI        string           `json:"iri"`
	Confidence float64          `json:"confidence"`
}

// Result collects mappings, the terms nothing matched, and follow-up
// suggestions for those.
type Result struct {
	Matches     []Mapping `json:"matches"`
	Unmatched   []string  `json:"unmatched"`
	Suggestions []string  `json:"suggestions"`
}

// Mapper resolves terms against one ontology.
type Mapper struct {
	svc *query.Service
}

// New builds a mapper over the model. The synonyms table comes from the
// per-ontology config in the registry; nil means generic matching only.
func New(m *ontology.Model, synonyms map[string]string) *Mapper {
	return &Mapper{svc: query.NewService(m, synonyms)}
}

// Map resolves each term to its candidate entities, best match first per
// term. Duplicate (term, IRI) pairs are dropped. Terms with no candidate at
// or above the score floor land in Unmatched.
func (mp *Mapper) Map(terms []string) (*Result, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("no terms to map")
	}

	result := &Result{}
	seen := make(map[string]bool)

	for _, raw := range terms {
		term := strings.TrimSpace(raw)
		if term == "" {
			continue
		}
		matches, err := mp.svc.Search(term, query.TargetBoth)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			result.Unmatched = append(result.Unmatched, term)
			result.Suggestions = append(result.Suggestions,
				fmt.Sprintf("no match for %q; try a broader search term", term))
			continue
		}
		for _, m := range matches {
			key := term + "\x00" + m.Entity.IRI
			if seen[key] {
				continue
			}
			seen[key] = true
			result.Matches = append(result.Matches, Mapping{
				Term:       term,
				Matched:    m.Entity.Label,
				Kind:       m.Entity.Kind,
				IRI:        m.Entity.IRI,
				Confidence: m.Score,
			})
		}
	}
	return result, nil
}
