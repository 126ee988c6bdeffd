package index

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// SchemaOverrides adjusts the default schema from a TOML document.
// Unset keys leave the schema untouched.
//
//	[vector]
//	dimensions = 3072
//	profile = "my-vector-profile"
//
//	[hnsw]
//	name = "my-hnsw-config"
//	m = 4
//	ef_construction = 400
//	ef_search = 500
//	metric = "cosine"
type SchemaOverrides struct {
	Vector VectorOverrides `toml:"vector"`
	HNSW   HNSWOverrides   `toml:"hnsw"`
}

// VectorOverrides adjusts the vector field.
type VectorOverrides struct {
	Dimensions *int    `toml:"dimensions"`
	Profile    *string `toml:"profile"`
}

// HNSWOverrides adjusts the algorithm bound to the vector field.
type HNSWOverrides struct {
	Name           *string `toml:"name"`
	M              *int    `toml:"m"`
	EfConstruction *int    `toml:"ef_construction"`
	EfSearch       *int    `toml:"ef_search"`
	Metric         *string `toml:"metric"`
}

// ParseSchemaOverrides decodes overrides from TOML. Unknown keys are rejected.
func ParseSchemaOverrides(data []byte) (*SchemaOverrides, error) {
	var o SchemaOverrides
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&o); err != nil {
		return nil, fmt.Errorf("parse schema overrides: %w", err)
	}
	return &o, nil
}

// LoadSchemaOverrides reads and decodes a TOML overrides file.
func LoadSchemaOverrides(path string) (*SchemaOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema overrides: %w", err)
	}
	return ParseSchemaOverrides(data)
}

// Apply rewrites the schema's vector field, profile and algorithm in place.
// The schema must have been built by DefaultSchema or have the same shape.
func (o *SchemaOverrides) Apply(s *Schema) error {
	if o == nil {
		return nil
	}

	vi := -1
	for i := range s.Fields {
		if s.Fields[i].IsVector() {
			vi = i
			break
		}
	}
	if vi < 0 {
		return fmt.Errorf("%w: no vector field", ErrInvalidSchema)
	}
	ai, pi := s.algorithmIndex()
	if ai < 0 || pi < 0 {
		return fmt.Errorf("%w: vector profile does not resolve to an algorithm", ErrInvalidSchema)
	}

	field := &s.Fields[vi]
	profile := &s.VectorSearch.Profiles[pi]
	algo := &s.VectorSearch.Algorithms[ai]

	if v := o.Vector.Dimensions; v != nil {
		field.Dimensions = *v
	}
	if v := o.Vector.Profile; v != nil {
		field.VectorProfile = *v
		profile.Name = *v
	}
	if v := o.HNSW.Name; v != nil {
		algo.Name = *v
		profile.Algorithm = *v
	}
	if v := o.HNSW.M; v != nil {
		algo.HNSW.M = *v
	}
	if v := o.HNSW.EfConstruction; v != nil {
		algo.HNSW.EfConstruction = *v
	}
	if v := o.HNSW.EfSearch; v != nil {
		algo.HNSW.EfSearch = *v
	}
	if v := o.HNSW.Metric; v != nil {
		algo.HNSW.Metric = Metric(*v)
	}
	return s.Validate()
}

// algorithmIndex returns the positions of the algorithm and profile bound to the vector field.
func (s *Schema) algorithmIndex() (algo, profile int) {
	algo, profile = -1, -1
	f, ok := s.VectorField()
	if !ok {
		return
	}
	for i, p := range s.VectorSearch.Profiles {
		if p.Name == f.VectorProfile {
			profile = i
			break
		}
	}
	if profile < 0 {
		return
	}
	for i, a := range s.VectorSearch.Algorithms {
		if a.Name == s.VectorSearch.Profiles[profile].Algorithm {
			algo = i
			break
		}
	}
	return
}
