package query

import "strings"

// Scores assigned by the match rules. An entity's score is the maximum over
// all matching rules; entities below MinScore are excluded from results.
const (
	ScoreExactLabel  = 1.0
	ScoreSynonym     = 0.9
	ScoreSubstring   = 0.7
	ScoreDescription = 0.5

	// MinScore is the floor below which matches are dropped.
	MinScore = 0.5
)

// Rule is a pure scoring function: it reports whether an entity matches the
// query and with what score. Rules are composed into an ordered list rather
// than branched ad hoc, so the matching policy is explicit and extensible.
type Rule func(query string, e Entity) (float64, bool)

// exactLabelRule matches the label exactly (case-sensitive).
func exactLabelRule(query string, e Entity) (float64, bool) {
	if e.Label == query {
		return ScoreExactLabel, true
	}
	return 0, false
}

// synonymRule matches case-insensitive synonym/alias entries that point at
// the entity's label or local name.
func synonymRule(synonyms map[string]string) Rule {
	return func(query string, e Entity) (float64, bool) {
		target, ok := synonyms[strings.ToLower(query)]
		if !ok {
			return 0, false
		}
		if strings.EqualFold(target, e.Label) || strings.EqualFold(target, e.LocalName) {
			return ScoreSynonym, true
		}
		return 0, false
	}
}

// substringRule matches the query as a case-insensitive substring of the
// label or the local name.
func substringRule(query string, e Entity) (float64, bool) {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(e.Label), q) ||
		strings.Contains(strings.ToLower(e.LocalName), q) {
		return ScoreSubstring, true
	}
	return 0, false
}

// descriptionRule matches only within the description/comment text.
func descriptionRule(query string, e Entity) (float64, bool) {
	if e.Description == "" {
		return 0, false
	}
	if strings.Contains(strings.ToLower(e.Description), strings.ToLower(query)) {
		return ScoreDescription, true
	}
	return 0, false
}

// score evaluates every rule and keeps the maximum.
func score(rules []Rule, query string, e Entity) (float64, bool) {
	best := 0.0
	matched := false
	for _, rule := range rules {
		if s, ok := rule(query, e); ok && s > best {
			best = s
			matched = true
		}
	}
	if !matched || best < MinScore {
		return 0, false
	}
	return best, true
}
