package owl

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/ontograph/ontology"
)

const fixtureOWL = `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
         xmlns:owl="http://www.w3.org/2002/07/owl#"
         xmlns:skos="http://www.w3.org/2004/02/skos/core#"
         xmlns:dc="http://purl.org/dc/elements/1.1/"
         xmlns:terms="http://purl.org/dc/terms/">
  <owl:Ontology rdf:about="http://example.org/cmso">
    <owl:versionInfo>0.0.1</owl:versionInfo>
    <dc:title>Computational Material Sample Ontology</dc:title>
    <dc:description>Classes for describing material samples.</dc:description>
    <terms:license rdf:resource="http://creativecommons.org/licenses/by/4.0/"/>
    <owl:imports rdf:resource="http://example.org/pldo"/>
  </owl:Ontology>

  <owl:Class rdf:about="http://example.org/cmso#Material">
    <rdfs:label>material</rdfs:label>
  </owl:Class>

  <owl:Class rdf:about="http://example.org/cmso#CrystallineMaterial">
    <rdfs:label>crystalline material</rdfs:label>
    <rdfs:comment>A material with long-range structural order.</rdfs:comment>
    <rdfs:subClassOf rdf:resource="http://example.org/cmso#Material"/>
    <rdfs:subClassOf rdf:resource="http://www.w3.org/2002/07/owl#Thing"/>
  </owl:Class>

  <owl:Class rdf:about="http://example.org/cmso#AmorphousMaterial">
    <skos:prefLabel>amorphous material</skos:prefLabel>
    <skos:definition>A material without long-range order.</skos:definition>
    <rdfs:subClassOf rdf:resource="http://example.org/cmso#Material"/>
  </owl:Class>

  <owl:Class rdf:about="http://example.org/cmso#UnlabeledThing"/>

  <owl:ObjectProperty rdf:about="http://example.org/cmso#hasStructure">
    <rdfs:label>hasStructure</rdfs:label>
    <rdfs:domain>
      <owl:Class>
        <owl:unionOf rdf:parseType="Collection">
          <rdf:Description rdf:about="http://example.org/cmso#CrystallineMaterial"/>
          <rdf:Description rdf:about="http://example.org/cmso#AmorphousMaterial"/>
        </owl:unionOf>
      </owl:Class>
    </rdfs:domain>
    <rdfs:range rdf:resource="http://example.org/cmso#Structure"/>
  </owl:ObjectProperty>

  <owl:DatatypeProperty rdf:about="http://example.org/cmso#hasVolume">
    <rdfs:label>hasVolume</rdfs:label>
    <rdfs:domain rdf:resource="http://example.org/cmso#Material"/>
    <rdfs:range rdf:resource="http://www.w3.org/2001/XMLSchema#float"/>
  </owl:DatatypeProperty>

  <owl:DatatypeProperty rdf:about="http://example.org/cmso#hasNote"/>
</rdf:RDF>`

func TestParseClasses(t *testing.T) {
	model, err := Parse(strings.NewReader(fixtureOWL))
	require.NoError(t, err)
	require.Len(t, model.Classes, 4)

	material := model.Classes["http://example.org/cmso#Material"]
	require.NotNil(t, material)
	assert.Equal(t, "Material", material.LocalName)
	assert.Equal(t, "material", material.Label)
	assert.Empty(t, material.Parents)

	crystalline := model.Classes["http://example.org/cmso#CrystallineMaterial"]
	require.NotNil(t, crystalline)
	assert.Equal(t, "A material with long-range structural order.", crystalline.Description)
	// owl:Thing never counts as a parent.
	assert.Equal(t, []string{"http://example.org/cmso#Material"}, crystalline.ParentIRIs())

	amorphous := model.Classes["http://example.org/cmso#AmorphousMaterial"]
	require.NotNil(t, amorphous)
	assert.Equal(t, "amorphous material", amorphous.Label, "skos:prefLabel fallback")
	assert.Equal(t, "A material without long-range order.", amorphous.Description, "skos:definition fallback")

	unlabeled := model.Classes["http://example.org/cmso#UnlabeledThing"]
	require.NotNil(t, unlabeled)
	assert.Equal(t, "UnlabeledThing", unlabeled.Label, "label falls back to the local name")
}

func TestParseProperties(t *testing.T) {
	model, err := Parse(strings.NewReader(fixtureOWL))
	require.NoError(t, err)

	hasStructure := model.ObjectProperties["http://example.org/cmso#hasStructure"]
	require.NotNil(t, hasStructure)
	assert.Equal(t, []string{
		"http://example.org/cmso#AmorphousMaterial",
		"http://example.org/cmso#CrystallineMaterial",
	}, hasStructure.DomainIRIs(), "unionOf members flatten into the domain set")
	assert.Equal(t, []string{"http://example.org/cmso#Structure"}, hasStructure.RangeIRIs())

	hasVolume := model.DataProperties["http://example.org/cmso#hasVolume"]
	require.NotNil(t, hasVolume)
	assert.Equal(t, ontology.DatatypeFloat, hasVolume.Range)
	assert.Equal(t, []string{"http://example.org/cmso#Material"}, hasVolume.DomainIRIs())

	hasNote := model.DataProperties["http://example.org/cmso#hasNote"]
	require.NotNil(t, hasNote)
	assert.Equal(t, ontology.DatatypeString, hasNote.Range, "missing range defaults to string")
}

func TestParseMetadata(t *testing.T) {
	model, err := Parse(strings.NewReader(fixtureOWL))
	require.NoError(t, err)

	md := model.Metadata
	assert.Equal(t, "Computational Material Sample Ontology", md.Name)
	assert.Equal(t, "0.0.1", md.Version)
	assert.Equal(t, "http://example.org/cmso", md.SourceIRI)
	assert.Equal(t, "http://creativecommons.org/licenses/by/4.0/", md.License)
	assert.Equal(t, "Classes for describing material samples.", md.Description)
	assert.Equal(t, []string{"http://example.org/pldo"}, md.Imports)
}

func TestParseWarnings(t *testing.T) {
	model, err := Parse(strings.NewReader(fixtureOWL))
	require.NoError(t, err)

	kinds := make(map[ontology.WarningKind][]string)
	for _, w := range model.Warnings {
		kinds[w.Kind] = append(kinds[w.Kind], w.Subject)
	}

	// The range of hasStructure names a class the document never declares.
	assert.Contains(t, kinds[ontology.WarnUnresolvedReference], "http://example.org/cmso#hasStructure")
	// hasNote has no domain at all.
	assert.Contains(t, kinds[ontology.WarnEmptyDomain], "http://example.org/cmso#hasNote")
}

func TestParseMalformedXML(t *testing.T) {
	const broken = `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:owl="http://www.w3.org/2002/07/owl#">
  <owl:Class rdf:about="http://example.org/cmso#Material">
</rdf:RDF>`

	_, err := Parse(strings.NewReader(broken))
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Greater(t, parseErr.Line, int64(0), "parse errors carry the offending line")
}

func TestParseUnsupportedEncoding(t *testing.T) {
	// A charset the reader cannot provide fails the decode without an
	// *xml.SyntaxError; the parser must still wrap it as a ParseError.
	const doc = `<?xml version="1.0" encoding="no-such-charset"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:owl="http://www.w3.org/2002/07/owl#">
  <owl:Class rdf:about="http://example.org/cmso#Material"/>
</rdf:RDF>`

	_, err := Parse(strings.NewReader(doc))
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Contains(t, parseErr.Error(), "malformed OWL/XML")
}

func TestParseNonUTF8Charset(t *testing.T) {
	header := `<?xml version="1.0" encoding="ISO-8859-1"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
         xmlns:owl="http://www.w3.org/2002/07/owl#">
  <owl:Class rdf:about="http://example.org/cmso#Material">
    <rdfs:label>mat`
	footer := `riau</rdfs:label>
  </owl:Class>
</rdf:RDF>`

	// 0xE9 is Latin-1 for 'é'; invalid as a standalone UTF-8 byte.
	doc := append([]byte(header), 0xE9)
	doc = append(doc, []byte(footer)...)

	model, err := Parse(strings.NewReader(string(doc)))
	require.NoError(t, err)
	assert.Equal(t, "matériau", model.Classes["http://example.org/cmso#Material"].Label)
}
