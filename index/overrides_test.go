package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaOverridesApply(t *testing.T) {
	o, err := ParseSchemaOverrides([]byte(`
[vector]
dimensions = 1536
profile = "small-profile"

[hnsw]
name = "small-hnsw"
m = 8
ef_search = 200
metric = "dotProduct"
`))
	require.NoError(t, err)

	s := DefaultSchema("researchers", 3072)
	require.NoError(t, o.Apply(s))

	vf, _ := s.VectorField()
	assert.Equal(t, 1536, vf.Dimensions)
	assert.Equal(t, "small-profile", vf.VectorProfile)

	algo, ok := s.Algorithm()
	require.True(t, ok)
	assert.Equal(t, "small-hnsw", algo.Name)
	assert.Equal(t, 8, algo.HNSW.M)
	assert.Equal(t, 400, algo.HNSW.EfConstruction, "unset keys keep defaults")
	assert.Equal(t, 200, algo.HNSW.EfSearch)
	assert.Equal(t, MetricDotProduct, algo.HNSW.Metric)
}

func TestSchemaOverridesEmpty(t *testing.T) {
	o, err := ParseSchemaOverrides(nil)
	require.NoError(t, err)

	s := DefaultSchema("researchers", 3072)
	require.NoError(t, o.Apply(s))
	assert.Equal(t, DefaultSchema("researchers", 3072), s)
}

func TestSchemaOverridesInvalid(t *testing.T) {
	_, err := ParseSchemaOverrides([]byte("[hnsw]\nbogus = 1\n"))
	assert.Error(t, err)

	o, err := ParseSchemaOverrides([]byte("[hnsw]\nmetric = \"hamming\"\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, o.Apply(DefaultSchema("researchers", 3072)), ErrInvalidSchema)
}

func TestLoadSchemaOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.toml")
	require.NoError(t, os.WriteFile(path, []byte("[hnsw]\nm = 6\n"), 0o600))

	o, err := LoadSchemaOverrides(path)
	require.NoError(t, err)
	require.NotNil(t, o.HNSW.M)
	assert.Equal(t, 6, *o.HNSW.M)

	_, err = LoadSchemaOverrides(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
