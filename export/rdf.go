// Package export re-serializes an ontology model as RDF. Output ordering is
// deterministic: prefixes sorted by name, entities sorted by IRI, so the
// same model always exports byte-identical documents.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/ontograph/ontology"
	"github.com/c360studio/ontograph/vocabulary/rdfvoc"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// triple is one exported statement. Objects are either IRIs or literals.
type triple struct {
	subject   string
	predicate string
	object    string
	isIRI     bool
}

// RDFExporter exports one ontology model.
type RDFExporter struct {
	model    *ontology.Model
	prefixes map[string]string
}

// NewRDFExporter creates an exporter for the model.
func NewRDFExporter(m *ontology.Model) *RDFExporter {
	return &RDFExporter{model: m, prefixes: defaultPrefixes()}
}

// defaultPrefixes returns the standard namespace prefixes for RDF export.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":  rdfvoc.RDF,
		"rdfs": rdfvoc.RDFS,
		"owl":  rdfvoc.OWL,
		"xsd":  rdfvoc.XSD,
		"skos": rdfvoc.SKOS,
		"dc":   rdfvoc.DC,
	}
}

// Export serializes the model to the specified format.
func (e *RDFExporter) Export(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle(), nil
	case FormatNTriples:
		return e.toNTriples(), nil
	case FormatJSONLD:
		return e.toJSONLD(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// triples flattens the model into sorted statements.
func (e *RDFExporter) triples() []triple {
	var out []triple
	rdfType := rdfvoc.RDF + "type"

	for _, iri := range e.model.ClassIRIs() {
		cls := e.model.Classes[iri]
		out = append(out, triple{iri, rdfType, rdfvoc.OWLClass, true})
		out = append(out, triple{iri, rdfvoc.RDFSLabel, cls.Label, false})
		if cls.Description != "" {
			out = append(out, triple{iri, rdfvoc.RDFSComment, cls.Description, false})
		}
		for _, parent := range cls.ParentIRIs() {
			out = append(out, triple{iri, rdfvoc.RDFSSubClassOf, parent, true})
		}
	}
	for _, iri := range e.model.ObjectPropertyIRIs() {
		prop := e.model.ObjectProperties[iri]
		out = append(out, triple{iri, rdfType, rdfvoc.OWLObjectProperty, true})
		out = append(out, triple{iri, rdfvoc.RDFSLabel, prop.Label, false})
		if prop.Description != "" {
			out = append(out, triple{iri, rdfvoc.RDFSComment, prop.Description, false})
		}
		for _, d := range prop.DomainIRIs() {
			out = append(out, triple{iri, rdfvoc.RDFSDomain, d, true})
		}
		for _, r := range prop.RangeIRIs() {
			out = append(out, triple{iri, rdfvoc.RDFSRange, r, true})
		}
	}
	for _, iri := range e.model.DataPropertyIRIs() {
		prop := e.model.DataProperties[iri]
		out = append(out, triple{iri, rdfType, rdfvoc.OWLDatatypeProperty, true})
		out = append(out, triple{iri, rdfvoc.RDFSLabel, prop.Label, false})
		if prop.Description != "" {
			out = append(out, triple{iri, rdfvoc.RDFSComment, prop.Description, false})
		}
		for _, d := range prop.DomainIRIs() {
			out = append(out, triple{iri, rdfvoc.RDFSDomain, d, true})
		}
		out = append(out, triple{iri, rdfvoc.RDFSRange, datatypeIRI(prop.Range), true})
	}
	return out
}

func datatypeIRI(tag ontology.DatatypeTag) string {
	switch tag {
	case ontology.DatatypeInteger:
		return rdfvoc.XSDInteger
	case ontology.DatatypeFloat:
		return rdfvoc.XSDFloat
	case ontology.DatatypeBoolean:
		return rdfvoc.XSDBoolean
	default:
		return rdfvoc.XSDString
	}
}

// toTurtle serializes to Turtle format.
func (e *RDFExporter) toTurtle() string {
	var sb strings.Builder

	for _, prefix := range e.sortedPrefixNames() {
		sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", prefix, e.prefixes[prefix]))
	}
	sb.WriteString("\n")

	bySubject := e.groupBySubject()
	for _, subject := range sortedKeys(bySubject) {
		stmts := bySubject[subject]
		sb.WriteString(fmt.Sprintf("<%s>\n", subject))
		for i, t := range stmts {
			sb.WriteString(fmt.Sprintf("    <%s> %s", t.predicate, formatObjectTurtle(t)))
			if i < len(stmts)-1 {
				sb.WriteString(" ;\n")
			} else {
				sb.WriteString(" .\n")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// toNTriples serializes to N-Triples format, one statement per line.
func (e *RDFExporter) toNTriples() string {
	var sb strings.Builder
	for _, t := range e.triples() {
		sb.WriteString(fmt.Sprintf("<%s> <%s> %s .\n", t.subject, t.predicate, formatObjectNTriples(t)))
	}
	return sb.String()
}

// toJSONLD serializes to JSON-LD format.
func (e *RDFExporter) toJSONLD() string {
	var sb strings.Builder

	sb.WriteString("{\n")
	sb.WriteString("  \"@context\": {\n")
	prefixNames := e.sortedPrefixNames()
	for i, prefix := range prefixNames {
		sb.WriteString(fmt.Sprintf("    %q: %q", prefix, e.prefixes[prefix]))
		if i < len(prefixNames)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  },\n")
	sb.WriteString("  \"@graph\": [\n")

	bySubject := e.groupBySubject()
	subjects := sortedKeys(bySubject)
	for si, subject := range subjects {
		sb.WriteString("    {\n")
		sb.WriteString(fmt.Sprintf("      \"@id\": %q", subject))
		for _, t := range bySubject[subject] {
			sb.WriteString(",\n")
			if t.isIRI {
				sb.WriteString(fmt.Sprintf("      %q: {\"@id\": %q}", t.predicate, t.object))
			} else {
				sb.WriteString(fmt.Sprintf("      %q: %q", t.predicate, t.object))
			}
		}
		sb.WriteString("\n    }")
		if si < len(subjects)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  ]\n")
	sb.WriteString("}\n")
	return sb.String()
}

func (e *RDFExporter) groupBySubject() map[string][]triple {
	grouped := make(map[string][]triple)
	for _, t := range e.triples() {
		grouped[t.subject] = append(grouped[t.subject], t)
	}
	return grouped
}

func (e *RDFExporter) sortedPrefixNames() []string {
	names := make([]string, 0, len(e.prefixes))
	for name := range e.prefixes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(m map[string][]triple) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatObjectTurtle formats an object value for Turtle output.
func formatObjectTurtle(t triple) string {
	if t.isIRI {
		return fmt.Sprintf("<%s>", t.object)
	}
	return fmt.Sprintf("\"%s\"", escapeString(t.object))
}

// formatObjectNTriples formats an object value for N-Triples output.
func formatObjectNTriples(t triple) string {
	if t.isIRI {
		return fmt.Sprintf("<%s>", t.object)
	}
	return fmt.Sprintf("\"%s\"", escapeString(t.object))
}

// escapeString escapes special characters in literal strings.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	return s
}
