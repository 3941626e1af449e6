// Package query answers point lookups and ranked free-text search over an
// ontology model. The service carries no state beyond the immutable model it
// was constructed with; repeated calls with the same inputs yield the same
// results.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/ontograph/ontology"
)

// availableSample bounds how many candidate names a not-found error lists.
const availableSample = 20

// ClassNotFoundError reports a class lookup miss. It carries a bounded
// sample of known class names so the caller can fall back to search.
type ClassNotFoundError struct {
	Name      string
	Available []string
}

// Error implements the error interface.
func (e *ClassNotFoundError) Error() string {
	return fmt.Sprintf("class %q not found; available: %s", e.Name, sampleString(e.Available))
}

// PropertyNotFoundError reports a property lookup miss.
type PropertyNotFoundError struct {
	Name      string
	Available []string
}

// Error implements the error interface.
func (e *PropertyNotFoundError) Error() string {
	return fmt.Sprintf("property %q not found; available: %s", e.Name, sampleString(e.Available))
}

func sampleString(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}

// EntityKind distinguishes search result entity types.
type EntityKind string

const (
	KindClass          EntityKind = "class"
	KindObjectProperty EntityKind = "object_property"
	KindDataProperty   EntityKind = "data_property"
)

// Entity is the uniform shape match rules score against.
type Entity struct {
	Kind        EntityKind `json:"kind"`
	IRI         string     `json:"iri"`
	LocalName   string     `json:"local_name"`
	Label       string     `json:"label"`
	Description string     `json:"description,omitempty"`
}

// Match is a scored search hit.
type Match struct {
	Entity Entity  `json:"entity"`
	Score  float64 `json:"score"`
}

// Target selects which entity kinds a search covers.
type Target string

const (
	TargetClasses    Target = "classes"
	TargetProperties Target = "properties"
	TargetBoth       Target = "both"
)

// Service answers lookups and searches over one model.
type Service struct {
	model *ontology.Model
	rules []Rule
}

// NewService builds a query service for the model. The synonyms table maps
// lowercased aliases to class or property names; pass nil when the ontology
// has no synonym config.
func NewService(m *ontology.Model, synonyms map[string]string) *Service {
	// Rule order mirrors descending score; composition keeps the policy
	// in one place.
	rules := []Rule{
		exactLabelRule,
		synonymRule(lowerKeys(synonyms)),
		substringRule,
		descriptionRule,
	}
	return &Service{model: m, rules: rules}
}

// FindClass resolves a class by exact, case-sensitive match: first against
// the IRI, then the local name, then the label. Fuzzy matching belongs to
// Search, not here.
func (s *Service) FindClass(nameOrIRI string) (*ontology.Class, error) {
	if cls, ok := s.model.Classes[nameOrIRI]; ok {
		return cls, nil
	}
	for _, iri := range s.model.ClassIRIs() {
		if s.model.Classes[iri].LocalName == nameOrIRI {
			return s.model.Classes[iri], nil
		}
	}
	for _, iri := range s.model.ClassIRIs() {
		if s.model.Classes[iri].Label == nameOrIRI {
			return s.model.Classes[iri], nil
		}
	}
	return nil, &ClassNotFoundError{Name: nameOrIRI, Available: s.classSample()}
}

// PropertyInfo is the kind-tagged result of a property lookup.
type PropertyInfo struct {
	Kind   EntityKind               `json:"kind"`
	Object *ontology.ObjectProperty `json:"object,omitempty"`
	Data   *ontology.DataProperty   `json:"data,omitempty"`
}

// FindProperty resolves a property by exact, case-sensitive match against
// IRI, then local name, then label, across object properties first and data
// properties second.
func (s *Service) FindProperty(nameOrIRI string) (*PropertyInfo, error) {
	if p, ok := s.model.ObjectProperties[nameOrIRI]; ok {
		return &PropertyInfo{Kind: KindObjectProperty, Object: p}, nil
	}
	if p, ok := s.model.DataProperties[nameOrIRI]; ok {
		return &PropertyInfo{Kind: KindDataProperty, Data: p}, nil
	}
	for _, pick := range []func(string) *PropertyInfo{s.objectByLocalName, s.dataByLocalName, s.objectByLabel, s.dataByLabel} {
		if info := pick(nameOrIRI); info != nil {
			return info, nil
		}
	}
	return nil, &PropertyNotFoundError{Name: nameOrIRI, Available: s.propertySample()}
}

// Search scores every entity in the target set against the query and returns
// matches ordered by descending score, ties broken lexicographically by
// local name. The result is a finite slice over the immutable model, so
// repeated calls are identical.
func (s *Service) Search(queryText string, target Target) ([]Match, error) {
	switch target {
	case TargetClasses, TargetProperties, TargetBoth:
	default:
		return nil, fmt.Errorf("unknown search target: %q", target)
	}

	var matches []Match
	consider := func(e Entity) {
		if sc, ok := score(s.rules, queryText, e); ok {
			matches = append(matches, Match{Entity: e, Score: sc})
		}
	}

	if target == TargetClasses || target == TargetBoth {
		for _, iri := range s.model.ClassIRIs() {
			consider(classEntity(s.model.Classes[iri]))
		}
	}
	if target == TargetProperties || target == TargetBoth {
		for _, iri := range s.model.ObjectPropertyIRIs() {
			consider(objectEntity(s.model.ObjectProperties[iri]))
		}
		for _, iri := range s.model.DataPropertyIRIs() {
			consider(dataEntity(s.model.DataProperties[iri]))
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Entity.LocalName < matches[j].Entity.LocalName
	})
	return matches, nil
}

func (s *Service) objectByLocalName(name string) *PropertyInfo {
	for _, iri := range s.model.ObjectPropertyIRIs() {
		if s.model.ObjectProperties[iri].LocalName == name {
			return &PropertyInfo{Kind: KindObjectProperty, Object: s.model.ObjectProperties[iri]}
		}
	}
	return nil
}

func (s *Service) dataByLocalName(name string) *PropertyInfo {
	for _, iri := range s.model.DataPropertyIRIs() {
		if s.model.DataProperties[iri].LocalName == name {
			return &PropertyInfo{Kind: KindDataProperty, Data: s.model.DataProperties[iri]}
		}
	}
	return nil
}

func (s *Service) objectByLabel(name string) *PropertyInfo {
	for _, iri := range s.model.ObjectPropertyIRIs() {
		if s.model.ObjectProperties[iri].Label == name {
			return &PropertyInfo{Kind: KindObjectProperty, Object: s.model.ObjectProperties[iri]}
		}
	}
	return nil
}

func (s *Service) dataByLabel(name string) *PropertyInfo {
	for _, iri := range s.model.DataPropertyIRIs() {
		if s.model.DataProperties[iri].Label == name {
			return &PropertyInfo{Kind: KindDataProperty, Data: s.model.DataProperties[iri]}
		}
	}
	return nil
}

func (s *Service) classSample() []string {
	var names []string
	for _, iri := range s.model.ClassIRIs() {
		names = append(names, s.model.Classes[iri].Label)
	}
	sort.Strings(names)
	if len(names) > availableSample {
		names = names[:availableSample]
	}
	return names
}

func (s *Service) propertySample() []string {
	var names []string
	for _, iri := range s.model.ObjectPropertyIRIs() {
		names = append(names, s.model.ObjectProperties[iri].Label)
	}
	for _, iri := range s.model.DataPropertyIRIs() {
		names = append(names, s.model.DataProperties[iri].Label)
	}
	sort.Strings(names)
	if len(names) > availableSample {
		names = names[:availableSample]
	}
	return names
}

func classEntity(c *ontology.Class) Entity {
	return Entity{Kind: KindClass, IRI: c.IRI, LocalName: c.LocalName, Label: c.Label, Description: c.Description}
}

func objectEntity(p *ontology.ObjectProperty) Entity {
	return Entity{Kind: KindObjectProperty, IRI: p.IRI, LocalName: p.LocalName, Label: p.Label, Description: p.Description}
}

func dataEntity(p *ontology.DataProperty) Entity {
	return Entity{Kind: KindDataProperty, IRI: p.IRI, LocalName: p.LocalName, Label: p.Label, Description: p.Description}
}

func lowerKeys(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}
