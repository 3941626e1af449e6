// Package rdfvoc defines the RDF, RDFS, OWL, and annotation vocabulary IRIs
// recognized by the ontology parser, plus helpers for working with IRIs.
package rdfvoc

import "strings"

// Namespace IRIs for the vocabularies the parser understands.
const (
	RDF   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS  = "http://www.w3.org/2000/01/rdf-schema#"
	OWL   = "http://www.w3.org/2002/07/owl#"
	XSD   = "http://www.w3.org/2001/XMLSchema#"
	SKOS  = "http://www.w3.org/2004/02/skos/core#"
	DC    = "http://purl.org/dc/elements/1.1/"
	Terms = "http://purl.org/dc/terms/"
	OBO   = "http://purl.obolibrary.org/obo/"
)

// IAODefinition is the IAO "definition" annotation property used by OBO-style
// ontologies (CMSO among them) for textual class definitions.
const IAODefinition = OBO + "IAO_0000115"

// Class and property element IRIs.
const (
	OWLClass            = OWL + "Class"
	OWLObjectProperty   = OWL + "ObjectProperty"
	OWLDatatypeProperty = OWL + "DatatypeProperty"
	OWLOntology         = OWL + "Ontology"
	OWLUnionOf          = OWL + "unionOf"
	OWLImports          = OWL + "imports"
	OWLVersionInfo      = OWL + "versionInfo"
	OWLThing            = OWL + "Thing"
	OWLNamedIndividual  = OWL + "NamedIndividual"
)

// RDF/RDFS term IRIs.
const (
	RDFAbout       = RDF + "about"
	RDFResource    = RDF + "resource"
	RDFDescription = RDF + "Description"
	RDFSSubClassOf = RDFS + "subClassOf"
	RDFSLabel      = RDFS + "label"
	RDFSComment    = RDFS + "comment"
	RDFSDomain     = RDFS + "domain"
	RDFSRange      = RDFS + "range"
	RDFSResource   = RDFS + "Resource"
)

// Annotation term IRIs.
const (
	SKOSPrefLabel  = SKOS + "prefLabel"
	SKOSDefinition = SKOS + "definition"
	DCTitle        = DC + "title"
	DCDescription  = DC + "description"
	DCRights       = DC + "rights"
	TermsAbstract  = Terms + "abstract"
	TermsLicense   = Terms + "license"
)

// XSD datatype IRIs for data property ranges.
const (
	XSDString  = XSD + "string"
	XSDInteger = XSD + "integer"
	XSDInt     = XSD + "int"
	XSDLong    = XSD + "long"
	XSDFloat   = XSD + "float"
	XSDDouble  = XSD + "double"
	XSDDecimal = XSD + "decimal"
	XSDBoolean = XSD + "boolean"
)

// builtinParents are class IRIs that are never recorded as parents; every
// declared class is implicitly a subclass of these.
var builtinParents = map[string]bool{
	OWLThing:           true,
	RDFSResource:       true,
	OWLNamedIndividual: true,
}

// IsBuiltinParent reports whether iri names an OWL/RDFS built-in that should
// be dropped from subclass edges.
func IsBuiltinParent(iri string) bool {
	return builtinParents[iri]
}

// LocalName extracts the local name from an IRI: the suffix after the last
// '#', or after the last '/' when no fragment is present.
func LocalName(iri string) string {
	if i := strings.LastIndex(iri, "#"); i >= 0 {
		return iri[i+1:]
	}
	if i := strings.LastIndex(iri, "/"); i >= 0 {
		return iri[i+1:]
	}
	return iri
}
