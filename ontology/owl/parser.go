// Package owl parses OWL/XML (RDF/XML serialization) documents into ontology
// models. The parser is pure: it consumes an io.Reader and performs no I/O of
// its own, so fetching a remote document is the caller's concern.
package owl

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/c360studio/ontograph/ontology"
	"github.com/c360studio/ontograph/vocabulary/rdfvoc"
)

// ParseError reports a syntactically malformed XML input. Unknown ontology
// vocabulary is tolerated; broken XML is not.
type ParseError struct {
	// Line is the 1-based line of the offending byte, or 0 when unknown.
	Line int64

	// Err is the underlying decoder error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed OWL/XML at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("malformed OWL/XML: %v", e.Err)
}

// Unwrap returns the underlying decoder error.
func (e *ParseError) Unwrap() error { return e.Err }

// rdfDocument mirrors the top-level RDF/XML structure. Only the vocabulary
// the engine interprets is declared; everything else is skipped by the
// decoder.
type rdfDocument struct {
	XMLName          xml.Name       `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# RDF"`
	Ontology         *ontologyElem  `xml:"http://www.w3.org/2002/07/owl# Ontology"`
	Classes          []classElem    `xml:"http://www.w3.org/2002/07/owl# Class"`
	ObjectProperties []propertyElem `xml:"http://www.w3.org/2002/07/owl# ObjectProperty"`
	DataProperties   []propertyElem `xml:"http://www.w3.org/2002/07/owl# DatatypeProperty"`
}

type ontologyElem struct {
	About       string         `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# about,attr"`
	VersionInfo string         `xml:"http://www.w3.org/2002/07/owl# versionInfo"`
	Title       string         `xml:"http://purl.org/dc/elements/1.1/ title"`
	Description string         `xml:"http://purl.org/dc/elements/1.1/ description"`
	Abstract    string         `xml:"http://purl.org/dc/terms/ abstract"`
	Rights      string         `xml:"http://purl.org/dc/elements/1.1/ rights"`
	License     []resourceText `xml:"http://purl.org/dc/terms/ license"`
	Imports     []resourceRef  `xml:"http://www.w3.org/2002/07/owl# imports"`
}

type classElem struct {
	About       string        `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# about,attr"`
	Labels      []string      `xml:"http://www.w3.org/2000/01/rdf-schema# label"`
	PrefLabels  []string      `xml:"http://www.w3.org/2004/02/skos/core# prefLabel"`
	Comments    []string      `xml:"http://www.w3.org/2000/01/rdf-schema# comment"`
	Definitions []string      `xml:"http://www.w3.org/2004/02/skos/core# definition"`
	IAODefs     []string      `xml:"http://purl.obolibrary.org/obo/ IAO_0000115"`
	SubClassOf  []resourceRef `xml:"http://www.w3.org/2000/01/rdf-schema# subClassOf"`
}

type propertyElem struct {
	About       string         `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# about,attr"`
	Labels      []string       `xml:"http://www.w3.org/2000/01/rdf-schema# label"`
	PrefLabels  []string       `xml:"http://www.w3.org/2004/02/skos/core# prefLabel"`
	Comments    []string       `xml:"http://www.w3.org/2000/01/rdf-schema# comment"`
	Definitions []string       `xml:"http://www.w3.org/2004/02/skos/core# definition"`
	IAODefs     []string       `xml:"http://purl.obolibrary.org/obo/ IAO_0000115"`
	Domains     []classTermRef `xml:"http://www.w3.org/2000/01/rdf-schema# domain"`
	Ranges      []classTermRef `xml:"http://www.w3.org/2000/01/rdf-schema# range"`
}

// resourceRef is an element carrying an rdf:resource attribute.
type resourceRef struct {
	Resource string `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# resource,attr"`
}

// resourceText carries either an rdf:resource attribute or literal text,
// as dc/terms license annotations appear both ways in the wild.
type resourceText struct {
	Resource string `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# resource,attr"`
	Text     string `xml:",chardata"`
}

// classTermRef is an rdfs:domain or rdfs:range element: either a direct
// rdf:resource reference or a nested owl:Class with an owl:unionOf list.
type classTermRef struct {
	Resource string          `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# resource,attr"`
	Class    *unionClassElem `xml:"http://www.w3.org/2002/07/owl# Class"`
}

type unionClassElem struct {
	UnionOf *unionOfElem `xml:"http://www.w3.org/2002/07/owl# unionOf"`
}

type unionOfElem struct {
	Descriptions []aboutRef `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# Description"`
	Classes      []aboutRef `xml:"http://www.w3.org/2002/07/owl# Class"`
}

type aboutRef struct {
	About string `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# about,attr"`
}

// Parse reads an OWL/XML document and builds an ontology model.
//
// Syntactic XML malformation fails with a *ParseError; unknown vocabulary is
// skipped. Missing optional annotations (labels, descriptions) never fail: a
// class without a label uses its local name. Domain/range/subClassOf targets
// that were referenced but never declared are kept in the model and recorded
// as unresolved-reference warnings.
func Parse(r io.Reader) (*ontology.Model, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var doc rdfDocument
	if err := dec.Decode(&doc); err != nil {
		var syn *xml.SyntaxError
		if errors.As(err, &syn) {
			return nil, &ParseError{Line: int64(syn.Line), Err: err}
		}
		line, _ := dec.InputPos()
		return nil, &ParseError{Line: int64(line), Err: err}
	}

	model := ontology.NewModel()
	model.Metadata = extractMetadata(doc.Ontology)

	for _, ce := range doc.Classes {
		if ce.About == "" {
			continue
		}
		cls := &ontology.Class{
			IRI:         ce.About,
			LocalName:   rdfvoc.LocalName(ce.About),
			Label:       firstNonEmpty(ce.Labels, ce.PrefLabels),
			Description: firstNonEmpty(ce.Comments, ce.Definitions, ce.IAODefs),
			Parents:     make(map[string]bool),
		}
		if cls.Label == "" {
			cls.Label = cls.LocalName
		}
		for _, sub := range ce.SubClassOf {
			if sub.Resource == "" || rdfvoc.IsBuiltinParent(sub.Resource) {
				continue
			}
			cls.Parents[sub.Resource] = true
		}
		model.Classes[cls.IRI] = cls
	}

	for _, pe := range doc.ObjectProperties {
		if pe.About == "" {
			continue
		}
		prop := &ontology.ObjectProperty{
			IRI:         pe.About,
			LocalName:   rdfvoc.LocalName(pe.About),
			Label:       firstNonEmpty(pe.Labels, pe.PrefLabels),
			Description: firstNonEmpty(pe.Comments, pe.Definitions, pe.IAODefs),
			Domain:      collectClassTerms(pe.Domains),
			Range:       collectClassTerms(pe.Ranges),
		}
		if prop.Label == "" {
			prop.Label = prop.LocalName
		}
		model.ObjectProperties[prop.IRI] = prop
	}

	for _, pe := range doc.DataProperties {
		if pe.About == "" {
			continue
		}
		prop := &ontology.DataProperty{
			IRI:         pe.About,
			LocalName:   rdfvoc.LocalName(pe.About),
			Label:       firstNonEmpty(pe.Labels, pe.PrefLabels),
			Description: firstNonEmpty(pe.Comments, pe.Definitions, pe.IAODefs),
			Domain:      collectClassTerms(pe.Domains),
			Range:       dataRange(pe.Ranges),
		}
		if prop.Label == "" {
			prop.Label = prop.LocalName
		}
		model.DataProperties[prop.IRI] = prop
	}

	recordWarnings(model)
	return model, nil
}

func extractMetadata(ont *ontologyElem) ontology.Metadata {
	if ont == nil {
		return ontology.Metadata{}
	}
	md := ontology.Metadata{
		Name:        strings.TrimSpace(ont.Title),
		Version:     strings.TrimSpace(ont.VersionInfo),
		SourceIRI:   ont.About,
		Description: strings.TrimSpace(ont.Description),
	}
	if md.Description == "" {
		md.Description = strings.TrimSpace(ont.Abstract)
	}
	for _, lic := range ont.License {
		if lic.Resource != "" {
			md.License = lic.Resource
			break
		}
		if t := strings.TrimSpace(lic.Text); t != "" {
			md.License = t
			break
		}
	}
	if md.License == "" {
		md.License = strings.TrimSpace(ont.Rights)
	}
	for _, imp := range ont.Imports {
		if imp.Resource != "" {
			md.Imports = append(md.Imports, imp.Resource)
		}
	}
	return md
}

// collectClassTerms gathers domain/range class IRIs, flattening owl:unionOf
// lists into the same set. A union domain means the property applies to
// every member class, not only the most specific one.
func collectClassTerms(refs []classTermRef) map[string]bool {
	set := make(map[string]bool)
	for _, ref := range refs {
		if ref.Resource != "" {
			set[ref.Resource] = true
			continue
		}
		if ref.Class == nil || ref.Class.UnionOf == nil {
			continue
		}
		for _, d := range ref.Class.UnionOf.Descriptions {
			if d.About != "" {
				set[d.About] = true
			}
		}
		for _, c := range ref.Class.UnionOf.Classes {
			if c.About != "" {
				set[c.About] = true
			}
		}
	}
	return set
}

// dataRange resolves a datatype property's range to its primitive tag. A
// missing range defaults to string.
func dataRange(refs []classTermRef) ontology.DatatypeTag {
	for _, ref := range refs {
		if ref.Resource != "" {
			return ontology.DatatypeFromIRI(ref.Resource)
		}
	}
	return ontology.DatatypeString
}

// recordWarnings scans the finished model for references to classes that
// were never declared and for properties without a usable domain.
func recordWarnings(m *ontology.Model) {
	for _, iri := range m.ClassIRIs() {
		cls := m.Classes[iri]
		for _, parent := range cls.ParentIRIs() {
			if _, ok := m.Classes[parent]; !ok {
				m.AddWarning(ontology.WarnUnresolvedReference, iri,
					fmt.Sprintf("subClassOf target %s is not declared", parent))
			}
		}
	}
	for _, iri := range m.ObjectPropertyIRIs() {
		prop := m.ObjectProperties[iri]
		warnUnknownMembers(m, iri, "domain", prop.DomainIRIs())
		warnUnknownMembers(m, iri, "range", prop.RangeIRIs())
		if len(prop.Domain) == 0 {
			m.AddWarning(ontology.WarnEmptyDomain, iri, "object property has no domain")
		}
	}
	for _, iri := range m.DataPropertyIRIs() {
		prop := m.DataProperties[iri]
		warnUnknownMembers(m, iri, "domain", prop.DomainIRIs())
		if len(prop.Domain) == 0 {
			m.AddWarning(ontology.WarnEmptyDomain, iri, "data property has no domain")
		}
	}
}

func warnUnknownMembers(m *ontology.Model, propIRI, role string, members []string) {
	for _, member := range members {
		if _, ok := m.Classes[member]; !ok {
			m.AddWarning(ontology.WarnUnresolvedReference, propIRI,
				fmt.Sprintf("%s member %s is not declared", role, member))
		}
	}
}

func firstNonEmpty(groups ...[]string) string {
	for _, group := range groups {
		for _, s := range group {
			if t := strings.TrimSpace(s); t != "" {
				return t
			}
		}
	}
	return ""
}
