package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/ontograph/hierarchy"
	"github.com/c360studio/ontograph/ontology"
	"github.com/c360studio/ontograph/registry"
)

const ns = "http://example.org/v#"

// defectModel is the shared validation fixture:
//
//	Material
//	└── CrystallineMaterial
//	Defect
//	└── Dislocation
//
// hasDefect: CrystallineMaterial -> Defect
// hasVolume: Material -> float
func defectModel() *ontology.Model {
	m := ontology.NewModel()
	classes := map[string][]string{
		"Material":            nil,
		"CrystallineMaterial": {"Material"},
		"Defect":              nil,
		"Dislocation":         {"Defect"},
	}
	for name, parents := range classes {
		parentSet := make(map[string]bool, len(parents))
		for _, p := range parents {
			parentSet[ns+p] = true
		}
		m.Classes[ns+name] = &ontology.Class{
			IRI: ns + name, LocalName: name, Label: name, Parents: parentSet,
		}
	}
	m.ObjectProperties[ns+"hasDefect"] = &ontology.ObjectProperty{
		IRI: ns + "hasDefect", LocalName: "hasDefect", Label: "hasDefect",
		Domain: map[string]bool{ns + "CrystallineMaterial": true},
		Range:  map[string]bool{ns + "Defect": true},
	}
	m.DataProperties[ns+"hasVolume"] = &ontology.DataProperty{
		IRI: ns + "hasVolume", LocalName: "hasVolume", Label: "hasVolume",
		Domain: map[string]bool{ns + "Material": true},
		Range:  ontology.DatatypeFloat,
	}
	return m
}

func newTestChecker(t *testing.T) *Checker {
	t.Helper()
	m := defectModel()
	idx, err := hierarchy.Build(m)
	require.NoError(t, err)
	return NewChecker(m, idx)
}

func TestCheckSchemaValid(t *testing.T) {
	c := newTestChecker(t)

	result, err := c.CheckSchema([]Annotation{
		{Class: "CrystallineMaterial", Properties: map[string]any{
			"hasDefect": "Dislocation",
			"hasVolume": 1.5,
		}},
	})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestCheckSchemaUnknownClassAndProperty(t *testing.T) {
	c := newTestChecker(t)

	result, err := c.CheckSchema([]Annotation{
		{Class: "Unobtainium"},
		{Class: "Material", Properties: map[string]any{"hasColor": "red"}},
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)

	require.Len(t, result.Errors, 2)
	kinds := []string{result.Errors[0].Kind, result.Errors[1].Kind}
	assert.Contains(t, kinds, "unknown_class")
	assert.Contains(t, kinds, "unknown_property")
}

func TestCheckSchemaDomainMismatchIsWarning(t *testing.T) {
	c := newTestChecker(t)

	// hasDefect's domain is CrystallineMaterial; applying it to Defect is
	// suspicious but not fatal.
	result, err := c.CheckSchema([]Annotation{
		{Class: "Defect", Properties: map[string]any{"hasDefect": "x"}},
	})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "domain_mismatch", result.Warnings[0].Kind)
}

func TestCheckSchemaRejectsEmptyInput(t *testing.T) {
	c := newTestChecker(t)
	_, err := c.CheckSchema(nil)
	assert.Error(t, err)
}

func TestCheckRelationships(t *testing.T) {
	c := newTestChecker(t)

	report, err := c.CheckRelationships([]Relationship{
		// Exact domain and range classes.
		{SubjectClass: "CrystallineMaterial", Property: "hasDefect", ObjectClass: "Defect"},
		// Subclass of the range is compatible.
		{SubjectClass: "CrystallineMaterial", Property: "hasDefect", ObjectClass: "Dislocation"},
	})
	require.NoError(t, err)
	assert.True(t, report.Valid)
	for _, res := range report.Results {
		assert.True(t, res.Valid, "%+v", res.Relationship)
	}
}

func TestCheckRelationshipsIncompatible(t *testing.T) {
	c := newTestChecker(t)

	report, err := c.CheckRelationships([]Relationship{
		// Material is above the domain, not in or below it.
		{SubjectClass: "Material", Property: "hasDefect", ObjectClass: "Defect"},
		// Data properties are not relationships.
		{SubjectClass: "CrystallineMaterial", Property: "hasVolume", ObjectClass: "Defect"},
		// Unknown property.
		{SubjectClass: "Material", Property: "hasNothing", ObjectClass: "Defect"},
	})
	require.NoError(t, err)
	assert.False(t, report.Valid)

	require.Len(t, report.Results, 3)
	assert.False(t, report.Results[0].Valid)
	assert.Contains(t, report.Results[0].Errors[0], "domain")
	assert.False(t, report.Results[1].Valid)
	assert.Contains(t, report.Results[1].Errors[0], "data property")
	assert.False(t, report.Results[2].Valid)
	assert.Contains(t, report.Results[2].Errors[0], "not found")
}

func TestCheckCompletenessWithConstraints(t *testing.T) {
	c := newTestChecker(t)

	constraints := registry.ConstraintConfig{
		"CrystallineMaterial": {
			Required:    []string{"hasDefect"},
			Recommended: []string{"hasVolume"},
		},
	}

	result, err := c.CheckCompleteness("CrystallineMaterial", []string{"hasDefect"}, constraints)
	require.NoError(t, err)
	assert.Equal(t, 0.5, result.Score)
	assert.Empty(t, result.RequiredMissing)
	assert.Equal(t, []string{"hasVolume"}, result.RecommendedMissing)
}

func TestCheckCompletenessDefaultsToInherited(t *testing.T) {
	c := newTestChecker(t)

	// No constraints: every inherited property (hasDefect and hasVolume)
	// counts as recommended.
	result, err := c.CheckCompleteness("CrystallineMaterial", []string{"hasVolume"}, registry.ConstraintConfig{})
	require.NoError(t, err)
	assert.Equal(t, 0.5, result.Score)
	assert.Equal(t, []string{"hasDefect"}, result.RecommendedMissing)
}

func TestCheckCompletenessNormalizesNames(t *testing.T) {
	c := newTestChecker(t)

	result, err := c.CheckCompleteness("CrystallineMaterial",
		[]string{"HASDEFECT", "hasvolume", "madeUpProp"}, registry.ConstraintConfig{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, []string{"madeUpProp"}, result.Unrecognized)
}

func TestCheckCompletenessUnknownClass(t *testing.T) {
	c := newTestChecker(t)
	_, err := c.CheckCompleteness("Unobtainium", nil, registry.ConstraintConfig{})
	assert.Error(t, err)

	_, err = c.CheckCompleteness("", nil, registry.ConstraintConfig{})
	assert.Error(t, err)
}
