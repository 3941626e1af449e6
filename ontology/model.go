// Package ontology defines the in-memory ontology model: classes, object and
// data properties, ontology metadata, and parse warnings. A Model is built
// once per invocation (by the OWL parser or the summary loader) and treated
// as immutable afterwards.
package ontology

import (
	"sort"

	"github.com/c360studio/ontograph/vocabulary/rdfvoc"
)

// Class is a declared ontology class.
type Class struct {
	// IRI is the globally unique identifier.
	IRI string `json:"iri"`

	// LocalName is the IRI suffix after the last '#' or '/'.
	LocalName string `json:"local_name"`

	// Label is the human-readable name; falls back to LocalName when the
	// source carries no rdfs:label or skos:prefLabel.
	Label string `json:"label"`

	// Description is the rdfs:comment, skos:definition, or IAO definition
	// text, when present.
	Description string `json:"description,omitempty"`

	// Parents holds the rdfs:subClassOf targets. Multiple inheritance is
	// permitted; empty for root classes. OWL built-ins (owl:Thing and
	// friends) are never recorded here.
	Parents map[string]bool `json:"-"`
}

// ParentIRIs returns the parent set as a sorted slice.
func (c *Class) ParentIRIs() []string {
	return sortedKeys(c.Parents)
}

// DatatypeTag is the primitive range kind of a data property.
type DatatypeTag string

// Datatype tags derived from xsd range IRIs. Unknown xsd types map to string.
const (
	DatatypeString  DatatypeTag = "string"
	DatatypeInteger DatatypeTag = "integer"
	DatatypeFloat   DatatypeTag = "float"
	DatatypeBoolean DatatypeTag = "boolean"
)

// DatatypeFromIRI maps an xsd range IRI to its tag.
func DatatypeFromIRI(iri string) DatatypeTag {
	switch iri {
	case rdfvoc.XSDInteger, rdfvoc.XSDInt, rdfvoc.XSDLong:
		return DatatypeInteger
	case rdfvoc.XSDFloat, rdfvoc.XSDDouble, rdfvoc.XSDDecimal:
		return DatatypeFloat
	case rdfvoc.XSDBoolean:
		return DatatypeBoolean
	default:
		return DatatypeString
	}
}

// ObjectProperty is a property whose range is a set of classes.
type ObjectProperty struct {
	IRI         string          `json:"iri"`
	LocalName   string          `json:"local_name"`
	Label       string          `json:"label"`
	Description string          `json:"description,omitempty"`
	Domain      map[string]bool `json:"-"`
	Range       map[string]bool `json:"-"`
}

// DomainIRIs returns the domain set as a sorted slice.
func (p *ObjectProperty) DomainIRIs() []string { return sortedKeys(p.Domain) }

// RangeIRIs returns the range set as a sorted slice.
func (p *ObjectProperty) RangeIRIs() []string { return sortedKeys(p.Range) }

// DataProperty is a property whose range is a primitive datatype.
type DataProperty struct {
	IRI         string          `json:"iri"`
	LocalName   string          `json:"local_name"`
	Label       string          `json:"label"`
	Description string          `json:"description,omitempty"`
	Domain      map[string]bool `json:"-"`
	Range       DatatypeTag     `json:"range"`
}

// DomainIRIs returns the domain set as a sorted slice.
func (p *DataProperty) DomainIRIs() []string { return sortedKeys(p.Domain) }

// Metadata describes the ontology document itself.
type Metadata struct {
	Name        string   `json:"name,omitempty"`
	Version     string   `json:"version,omitempty"`
	SourceIRI   string   `json:"source_iri,omitempty"`
	License     string   `json:"license,omitempty"`
	Description string   `json:"description,omitempty"`
	Imports     []string `json:"imports,omitempty"`

	// SummaryID identifies the summarize run that produced the persisted
	// form; empty on freshly parsed models.
	SummaryID string `json:"summary_id,omitempty"`

	// GeneratedAt is the RFC 3339 timestamp of the summarize run.
	GeneratedAt string `json:"generated_at,omitempty"`
}

// WarningKind classifies non-fatal issues found while building a model.
type WarningKind string

const (
	// WarnUnresolvedReference marks a domain/range/subClassOf target that
	// was referenced but never declared.
	WarnUnresolvedReference WarningKind = "unresolved_reference"

	// WarnEmptyDomain marks a property declared without any usable domain.
	// Such properties are excluded from inherited-property results.
	WarnEmptyDomain WarningKind = "empty_domain"
)

// Warning is a non-fatal issue recorded alongside a successfully built model.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Subject string      `json:"subject"`
	Detail  string      `json:"detail"`
}

// Model is the aggregate root: it exclusively owns all class and property
// entities. Keys are IRIs.
type Model struct {
	Metadata         Metadata
	Classes          map[string]*Class
	ObjectProperties map[string]*ObjectProperty
	DataProperties   map[string]*DataProperty
	Warnings         []Warning
}

// NewModel returns an empty model with initialized maps.
func NewModel() *Model {
	return &Model{
		Classes:          make(map[string]*Class),
		ObjectProperties: make(map[string]*ObjectProperty),
		DataProperties:   make(map[string]*DataProperty),
	}
}

// ClassIRIs returns all class IRIs in sorted order.
func (m *Model) ClassIRIs() []string {
	iris := make([]string, 0, len(m.Classes))
	for iri := range m.Classes {
		iris = append(iris, iri)
	}
	sort.Strings(iris)
	return iris
}

// ObjectPropertyIRIs returns all object property IRIs in sorted order.
func (m *Model) ObjectPropertyIRIs() []string {
	iris := make([]string, 0, len(m.ObjectProperties))
	for iri := range m.ObjectProperties {
		iris = append(iris, iri)
	}
	sort.Strings(iris)
	return iris
}

// DataPropertyIRIs returns all data property IRIs in sorted order.
func (m *Model) DataPropertyIRIs() []string {
	iris := make([]string, 0, len(m.DataProperties))
	for iri := range m.DataProperties {
		iris = append(iris, iri)
	}
	sort.Strings(iris)
	return iris
}

// AddWarning appends a warning to the model.
func (m *Model) AddWarning(kind WarningKind, subject, detail string) {
	m.Warnings = append(m.Warnings, Warning{Kind: kind, Subject: subject, Detail: detail})
}

// Equal reports whether two models describe the same ontology: same class
// set with the same parent sets, labels, and descriptions, and the same
// properties with the same domain and range sets. Warnings, SummaryID, and
// GeneratedAt are excluded; they describe a run, not the ontology.
func (m *Model) Equal(other *Model) bool {
	if other == nil {
		return false
	}
	if m.Metadata.Name != other.Metadata.Name ||
		m.Metadata.Version != other.Metadata.Version ||
		m.Metadata.SourceIRI != other.Metadata.SourceIRI ||
		m.Metadata.License != other.Metadata.License {
		return false
	}
	if len(m.Classes) != len(other.Classes) {
		return false
	}
	for iri, c := range m.Classes {
		oc, ok := other.Classes[iri]
		if !ok || c.LocalName != oc.LocalName || c.Label != oc.Label ||
			c.Description != oc.Description || !sameSet(c.Parents, oc.Parents) {
			return false
		}
	}
	if len(m.ObjectProperties) != len(other.ObjectProperties) {
		return false
	}
	for iri, p := range m.ObjectProperties {
		op, ok := other.ObjectProperties[iri]
		if !ok || p.Label != op.Label || p.Description != op.Description ||
			!sameSet(p.Domain, op.Domain) || !sameSet(p.Range, op.Range) {
			return false
		}
	}
	if len(m.DataProperties) != len(other.DataProperties) {
		return false
	}
	for iri, p := range m.DataProperties {
		op, ok := other.DataProperties[iri]
		if !ok || p.Label != op.Label || p.Description != op.Description ||
			p.Range != op.Range || !sameSet(p.Domain, op.Domain) {
			return false
		}
	}
	return true
}

func sameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetFromSlice builds a membership set from a slice of IRIs.
func SetFromSlice(iris []string) map[string]bool {
	set := make(map[string]bool, len(iris))
	for _, iri := range iris {
		set[iri] = true
	}
	return set
}
