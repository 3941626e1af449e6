// Package summary serializes ontology models to their canonical persisted
// form: a compact JSON document with classes and properties sorted by IRI.
// The summary file is what the hierarchy index and query service load on each
// invocation, so the original OWL/XML never needs re-parsing.
//
// Round-trip law: for any valid model m, Load(Summarize(m)) is equal to m
// under ontology.Model.Equal.
package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/ontograph/ontology"
)

// ClassEntry is the persisted form of an ontology class.
type ClassEntry struct {
	IRI         string   `json:"iri"`
	LocalName   string   `json:"local_name"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	Parents     []string `json:"parents"`
}

// ObjectPropertyEntry is the persisted form of an object property.
type ObjectPropertyEntry struct {
	IRI         string   `json:"iri"`
	LocalName   string   `json:"local_name"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	Domain      []string `json:"domain"`
	Range       []string `json:"range"`
}

// DataPropertyEntry is the persisted form of a data property.
type DataPropertyEntry struct {
	IRI         string               `json:"iri"`
	LocalName   string               `json:"local_name"`
	Label       string               `json:"label"`
	Description string               `json:"description,omitempty"`
	Domain      []string             `json:"domain"`
	Range       ontology.DatatypeTag `json:"range"`
}

// Statistics summarizes entity counts for quick inspection.
type Statistics struct {
	NumClasses          int `json:"num_classes"`
	NumObjectProperties int `json:"num_object_properties"`
	NumDataProperties   int `json:"num_data_properties"`
}

// Document is the summary file structure. Entry lists are sorted by IRI so
// the serialization is stable across runs.
type Document struct {
	Metadata         ontology.Metadata     `json:"metadata"`
	Classes          []ClassEntry          `json:"classes"`
	ObjectProperties []ObjectPropertyEntry `json:"object_properties"`
	DataProperties   []DataPropertyEntry   `json:"data_properties"`
	Statistics       Statistics            `json:"statistics"`
	Warnings         []ontology.Warning    `json:"warnings,omitempty"`
}

// Summarize converts a model into its persisted document form. Each call
// stamps a fresh summary ID and generation timestamp into the document
// metadata; neither participates in model equality.
func Summarize(m *ontology.Model) *Document {
	doc := &Document{
		Metadata: m.Metadata,
		Warnings: m.Warnings,
	}
	doc.Metadata.SummaryID = uuid.New().String()
	doc.Metadata.GeneratedAt = time.Now().UTC().Format(time.RFC3339)

	for _, iri := range m.ClassIRIs() {
		cls := m.Classes[iri]
		doc.Classes = append(doc.Classes, ClassEntry{
			IRI:         cls.IRI,
			LocalName:   cls.LocalName,
			Label:       cls.Label,
			Description: cls.Description,
			Parents:     cls.ParentIRIs(),
		})
	}
	for _, iri := range m.ObjectPropertyIRIs() {
		prop := m.ObjectProperties[iri]
		doc.ObjectProperties = append(doc.ObjectProperties, ObjectPropertyEntry{
			IRI:         prop.IRI,
			LocalName:   prop.LocalName,
			Label:       prop.Label,
			Description: prop.Description,
			Domain:      prop.DomainIRIs(),
			Range:       prop.RangeIRIs(),
		})
	}
	for _, iri := range m.DataPropertyIRIs() {
		prop := m.DataProperties[iri]
		doc.DataProperties = append(doc.DataProperties, DataPropertyEntry{
			IRI:         prop.IRI,
			LocalName:   prop.LocalName,
			Label:       prop.Label,
			Description: prop.Description,
			Domain:      prop.DomainIRIs(),
			Range:       prop.Range,
		})
	}
	doc.Statistics = Statistics{
		NumClasses:          len(doc.Classes),
		NumObjectProperties: len(doc.ObjectProperties),
		NumDataProperties:   len(doc.DataProperties),
	}
	return doc
}

// Load rebuilds a model from its persisted document form.
func Load(doc *Document) *ontology.Model {
	m := ontology.NewModel()
	m.Metadata = doc.Metadata
	m.Warnings = doc.Warnings

	for _, entry := range doc.Classes {
		m.Classes[entry.IRI] = &ontology.Class{
			IRI:         entry.IRI,
			LocalName:   entry.LocalName,
			Label:       entry.Label,
			Description: entry.Description,
			Parents:     ontology.SetFromSlice(entry.Parents),
		}
	}
	for _, entry := range doc.ObjectProperties {
		m.ObjectProperties[entry.IRI] = &ontology.ObjectProperty{
			IRI:         entry.IRI,
			LocalName:   entry.LocalName,
			Label:       entry.Label,
			Description: entry.Description,
			Domain:      ontology.SetFromSlice(entry.Domain),
			Range:       ontology.SetFromSlice(entry.Range),
		}
	}
	for _, entry := range doc.DataProperties {
		m.DataProperties[entry.IRI] = &ontology.DataProperty{
			IRI:         entry.IRI,
			LocalName:   entry.LocalName,
			Label:       entry.Label,
			Description: entry.Description,
			Domain:      ontology.SetFromSlice(entry.Domain),
			Range:       entry.Range,
		}
	}
	return m
}

// Encode writes the document as indented JSON.
func Encode(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}

// Decode reads a document from JSON.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	return &doc, nil
}

// WriteFile writes the document to path, creating or truncating it.
func WriteFile(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}
	defer f.Close()
	return Encode(f, doc)
}

// ReadFile reads a document from path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open summary file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
