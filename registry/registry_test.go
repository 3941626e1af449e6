package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	regPath := filepath.Join(dir, "registry.yaml")
	writeFile(t, regPath, `ontologies:
  CMSO:
    summary: summaries/cmso.summary.json
    synonyms: config/cmso-synonyms.yaml
  pldo:
    summary: /abs/pldo.summary.json
`)

	r, err := LoadFile(regPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"cmso", "pldo"}, r.Names(), "names are lowercased")

	entry, err := r.Lookup("cmso")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "summaries/cmso.summary.json"), entry.Summary,
		"relative paths resolve against the registry file's directory")
	assert.Equal(t, filepath.Join(dir, "config/cmso-synonyms.yaml"), entry.Synonyms)

	abs, err := r.Lookup("PLDO")
	require.NoError(t, err)
	assert.Equal(t, "/abs/pldo.summary.json", abs.Summary, "absolute paths pass through")
}

func TestLoadFileRejectsMissingSummary(t *testing.T) {
	regPath := filepath.Join(t.TempDir(), "registry.yaml")
	writeFile(t, regPath, `ontologies:
  broken:
    synonyms: syn.yaml
`)
	_, err := LoadFile(regPath)
	assert.Error(t, err)
}

func TestLookupMissListsAvailable(t *testing.T) {
	r := New("")
	r.Register("cmso", Entry{Summary: "cmso.summary.json"})

	_, err := r.Lookup("podo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cmso")
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "refs", "cmso.summary.json"), "{}")
	writeFile(t, filepath.Join(dir, "refs", "nested", "PLDO.summary.json"), "{}")
	writeFile(t, filepath.Join(dir, "refs", "notes.json"), "{}")

	r := New("")
	r.Register("cmso", Entry{Summary: "/explicit/cmso.summary.json"})

	added, err := r.Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, added, "explicit entries are not overwritten")
	assert.Equal(t, []string{"cmso", "pldo"}, r.Names())

	entry, err := r.Lookup("cmso")
	require.NoError(t, err)
	assert.Equal(t, "/explicit/cmso.summary.json", entry.Summary)

	pldo, err := r.Lookup("pldo")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "refs", "nested", "PLDO.summary.json"), pldo.Summary)
}

func TestLoadSynonyms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.yaml")
	writeFile(t, path, `synonyms:
  glass: amorphous material
property_synonyms:
  volume: hasVolume
  glass: shouldLoseToClassEntry
`)

	cfg, err := LoadSynonyms(path)
	require.NoError(t, err)

	merged := cfg.Merged()
	assert.Equal(t, "amorphous material", merged["glass"], "class synonyms win collisions")
	assert.Equal(t, "hasVolume", merged["volume"])
}

func TestLoadSynonymsMissingFile(t *testing.T) {
	cfg, err := LoadSynonyms(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Merged())

	cfg, err = LoadSynonyms("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Merged())
}

func TestLoadConstraints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "constraints.yaml")
	writeFile(t, path, `CrystallineMaterial:
  required:
    - hasDefect
  recommended:
    - hasVolume
`)

	cfg, err := LoadConstraints(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"hasDefect"}, cfg["CrystallineMaterial"].Required)
	assert.Equal(t, []string{"hasVolume"}, cfg["CrystallineMaterial"].Recommended)

	empty, err := LoadConstraints("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
