package validate

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/c360studio/ontograph/registry"
	"github.com/c360studio/ontograph/vocabulary/rdfvoc"
)

// CompletenessResult reports how much of a class's tracked property set an
// annotation covers.
type CompletenessResult struct {
	ClassName          string   `json:"class_name"`
	Score              float64  `json:"completeness_score"`
	RequiredMissing    []string `json:"required_missing"`
	RecommendedMissing []string `json:"recommended_missing"`
	OptionalMissing    []string `json:"optional_missing"`
	Provided           []string `json:"provided"`
	Unrecognized       []string `json:"unrecognized"`
}

// CheckCompleteness scores provided property names for a class against its
// constraint config. With no constraints for the class, every inherited
// property counts as recommended. The score is the fraction of tracked
// properties provided, rounded to three decimals.
func (c *Checker) CheckCompleteness(className string, provided []string, constraints registry.ConstraintConfig) (*CompletenessResult, error) {
	if className == "" {
		return nil, fmt.Errorf("class name must not be empty")
	}
	cls, err := c.svc.FindClass(className)
	if err != nil {
		return nil, err
	}

	inherited, err := c.index.InheritedProperties(cls.IRI)
	if err != nil {
		return nil, err
	}
	classProps := make(map[string]bool, len(inherited))
	for _, iri := range inherited {
		classProps[rdfvoc.LocalName(iri)] = true
	}

	cons := constraints[cls.Label]
	required := toSet(cons.Required)
	recommended := toSet(cons.Recommended)
	optional := toSet(cons.Optional)
	if len(required) == 0 && len(recommended) == 0 && len(optional) == 0 {
		recommended = classProps
	}

	// Normalize provided names case-insensitively against the ontology's
	// property names.
	known := c.knownPropertyNames()
	providedSet := make(map[string]bool)
	var unrecognized []string
	for _, raw := range provided {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if canonical, ok := known[strings.ToLower(name)]; ok {
			providedSet[canonical] = true
		} else {
			unrecognized = append(unrecognized, name)
		}
	}

	result := &CompletenessResult{
		ClassName:          cls.Label,
		RequiredMissing:    missing(required, providedSet),
		RecommendedMissing: missing(recommended, providedSet),
		OptionalMissing:    missing(optional, providedSet),
		Provided:           sortedMembers(providedSet),
		Unrecognized:       unrecognized,
	}

	totalTracked := len(required) + len(recommended) + len(optional)
	if totalTracked == 0 {
		if len(classProps) == 0 {
			result.Score = 1.0
		}
		return result, nil
	}
	providedTracked := countIn(required, providedSet) +
		countIn(recommended, providedSet) +
		countIn(optional, providedSet)
	result.Score = math.Round(float64(providedTracked)/float64(totalTracked)*1000) / 1000
	return result, nil
}

// knownPropertyNames maps lowercased labels and local names to the
// canonical local name.
func (c *Checker) knownPropertyNames() map[string]string {
	known := make(map[string]string)
	for _, iri := range c.model.ObjectPropertyIRIs() {
		p := c.model.ObjectProperties[iri]
		known[strings.ToLower(p.LocalName)] = p.LocalName
		known[strings.ToLower(p.Label)] = p.LocalName
	}
	for _, iri := range c.model.DataPropertyIRIs() {
		p := c.model.DataProperties[iri]
		known[strings.ToLower(p.LocalName)] = p.LocalName
		known[strings.ToLower(p.Label)] = p.LocalName
	}
	return known
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

func missing(tracked, provided map[string]bool) []string {
	var out []string
	for name := range tracked {
		if !provided[name] {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func countIn(tracked, provided map[string]bool) int {
	n := 0
	for name := range tracked {
		if provided[name] {
			n++
		}
	}
	return n
}

func sortedMembers(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
