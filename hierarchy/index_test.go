package hierarchy

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/ontograph/ontology"
)

const ns = "http://example.org/t#"

func addClass(m *ontology.Model, name string, parents ...string) {
	parentSet := make(map[string]bool, len(parents))
	for _, p := range parents {
		parentSet[ns+p] = true
	}
	m.Classes[ns+name] = &ontology.Class{
		IRI: ns + name, LocalName: name, Label: name, Parents: parentSet,
	}
}

// materialModel is the shared hierarchy fixture:
//
//	Material
//	├── CrystallineMaterial
//	│   └── CrystalDefect
//	└── AmorphousMaterial
//	Structure (root)
func materialModel() *ontology.Model {
	m := ontology.NewModel()
	addClass(m, "Material")
	addClass(m, "CrystallineMaterial", "Material")
	addClass(m, "AmorphousMaterial", "Material")
	addClass(m, "CrystalDefect", "CrystallineMaterial")
	addClass(m, "Structure")

	m.ObjectProperties[ns+"hasStructure"] = &ontology.ObjectProperty{
		IRI: ns + "hasStructure", LocalName: "hasStructure", Label: "hasStructure",
		Domain: map[string]bool{ns + "CrystallineMaterial": true, ns + "AmorphousMaterial": true},
		Range:  map[string]bool{ns + "Structure": true},
	}
	m.DataProperties[ns+"hasVolume"] = &ontology.DataProperty{
		IRI: ns + "hasVolume", LocalName: "hasVolume", Label: "hasVolume",
		Domain: map[string]bool{ns + "Material": true},
		Range:  ontology.DatatypeFloat,
	}
	m.DataProperties[ns+"orphan"] = &ontology.DataProperty{
		IRI: ns + "orphan", LocalName: "orphan", Label: "orphan",
		Domain: map[string]bool{},
		Range:  ontology.DatatypeString,
	}
	return m
}

func TestBuildTranspose(t *testing.T) {
	idx, err := Build(materialModel())
	require.NoError(t, err)

	children, err := idx.Children(ns + "Material")
	require.NoError(t, err)
	assert.Equal(t, []string{ns + "AmorphousMaterial", ns + "CrystallineMaterial"}, children)

	leaf, err := idx.Children(ns + "CrystalDefect")
	require.NoError(t, err)
	assert.Empty(t, leaf)

	assert.Equal(t, []string{ns + "Material", ns + "Structure"}, idx.Roots())
}

func TestChildrenUnknownClass(t *testing.T) {
	idx, err := Build(materialModel())
	require.NoError(t, err)

	_, err = idx.Children(ns + "Nope")
	var unknown *UnknownClassError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, ns+"Nope", unknown.IRI)
}

func TestAncestors(t *testing.T) {
	idx, err := Build(materialModel())
	require.NoError(t, err)

	path, err := idx.Ancestors(ns + "CrystalDefect")
	require.NoError(t, err)
	assert.Equal(t, []string{ns + "CrystallineMaterial", ns + "Material"}, path,
		"direct parent comes first")

	root, err := idx.Ancestors(ns + "Material")
	require.NoError(t, err)
	assert.Empty(t, root)
	assert.NotContains(t, path, ns+"CrystalDefect", "a class is never its own ancestor")
}

func TestAncestorsMultipleInheritanceTieBreak(t *testing.T) {
	m := materialModel()
	// Zeta sorts after Material; the lexicographically smaller parent wins.
	addClass(m, "Zeta")
	addClass(m, "Mixed", "Zeta", "Material")

	idx, err := Build(m)
	require.NoError(t, err)

	path, err := idx.Ancestors(ns + "Mixed")
	require.NoError(t, err)
	assert.Equal(t, []string{ns + "Material"}, path)
}

func TestDescendants(t *testing.T) {
	idx, err := Build(materialModel())
	require.NoError(t, err)

	set, err := idx.Descendants(ns + "Material")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{
		ns + "CrystallineMaterial": true,
		ns + "AmorphousMaterial":   true,
		ns + "CrystalDefect":       true,
	}, set)

	leaf, err := idx.Descendants(ns + "CrystalDefect")
	require.NoError(t, err)
	assert.Empty(t, leaf)
}

func TestCycleDetection(t *testing.T) {
	m := materialModel()
	addClass(m, "A", "B")
	addClass(m, "B", "A")

	idx, err := Build(m)
	require.NotNil(t, idx, "the index stays usable for unaffected classes")
	var cycleErr *CycleDetectedError
	require.True(t, errors.As(err, &cycleErr))
	assert.Contains(t, cycleErr.IRIs, ns+"A")
	assert.Contains(t, cycleErr.IRIs, ns+"B")

	// Classes off the cycle still answer.
	path, err := idx.Ancestors(ns + "CrystalDefect")
	require.NoError(t, err)
	assert.Len(t, path, 2)

	// Classes on the cycle fail but terminate.
	_, err = idx.Ancestors(ns + "A")
	require.True(t, errors.As(err, &cycleErr))

	_, err = idx.Descendants(ns + "A")
	require.True(t, errors.As(err, &cycleErr))

	_, err = idx.InheritedProperties(ns + "A")
	require.True(t, errors.As(err, &cycleErr))
}

func TestInheritedProperties(t *testing.T) {
	idx, err := Build(materialModel())
	require.NoError(t, err)

	// CrystalDefect inherits hasVolume (via Material) and hasStructure (via
	// CrystallineMaterial, a union-domain member). The domainless property
	// never appears.
	props, err := idx.InheritedProperties(ns + "CrystalDefect")
	require.NoError(t, err)
	assert.Equal(t, []string{ns + "hasStructure", ns + "hasVolume"}, props)

	// Both union members carry the property directly.
	props, err = idx.InheritedProperties(ns + "AmorphousMaterial")
	require.NoError(t, err)
	assert.Equal(t, []string{ns + "hasStructure", ns + "hasVolume"}, props)

	// Material itself sees only its own domain.
	props, err = idx.InheritedProperties(ns + "Material")
	require.NoError(t, err)
	assert.Equal(t, []string{ns + "hasVolume"}, props)
}

func TestInheritedPropertiesAllParents(t *testing.T) {
	m := materialModel()
	// Mixed inherits from both parents even though the ancestor path only
	// documents one of them.
	addClass(m, "Mixed", "AmorphousMaterial", "Structure")
	m.ObjectProperties[ns+"hasUnit"] = &ontology.ObjectProperty{
		IRI: ns + "hasUnit", LocalName: "hasUnit", Label: "hasUnit",
		Domain: map[string]bool{ns + "Structure": true},
		Range:  map[string]bool{},
	}

	idx, err := Build(m)
	require.NoError(t, err)

	props, err := idx.InheritedProperties(ns + "Mixed")
	require.NoError(t, err)
	assert.Equal(t, []string{ns + "hasStructure", ns + "hasUnit", ns + "hasVolume"}, props)
}

func TestIsSubclassOf(t *testing.T) {
	idx, err := Build(materialModel())
	require.NoError(t, err)

	tests := []struct {
		child, parent string
		want          bool
	}{
		{"CrystalDefect", "Material", true},
		{"CrystalDefect", "CrystallineMaterial", true},
		{"Material", "Material", true},
		{"Material", "CrystalDefect", false},
		{"AmorphousMaterial", "Structure", false},
	}
	for _, tt := range tests {
		got, err := idx.IsSubclassOf(ns+tt.child, ns+tt.parent)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s subclass of %s", tt.child, tt.parent)
	}

	_, err = idx.IsSubclassOf(ns+"Nope", ns+"Material")
	var unknown *UnknownClassError
	assert.True(t, errors.As(err, &unknown))
}

func TestDeepChain(t *testing.T) {
	m := ontology.NewModel()
	const depth = 1000
	addClass(m, "C0")
	for i := 1; i < depth; i++ {
		addClass(m, fmt.Sprintf("C%d", i), fmt.Sprintf("C%d", i-1))
	}

	idx, err := Build(m)
	require.NoError(t, err)

	path, err := idx.Ancestors(ns + fmt.Sprintf("C%d", depth-1))
	require.NoError(t, err)
	assert.Len(t, path, depth-1)
	assert.Equal(t, ns+"C0", path[len(path)-1])
}
