package index

import (
	"fmt"

	"github.com/poiesic/profindex/core"
)

// Field names shared by every backend. Documents must use exactly these keys.
const (
	FieldID       = "id"
	FieldJSONData = "json_data"
	FieldVector   = "vector"
)

// Default vector search configuration names.
const (
	DefaultAlgorithmName = "my-hnsw-config"
	DefaultProfileName   = "my-vector-profile"
)

// FieldType is the data type of an index field, using Azure AI Search EDM names.
type FieldType string

const (
	FieldTypeString FieldType = "Edm.String"
	FieldTypeVector FieldType = "Collection(Edm.Single)"
)

// Metric is the distance function used by the vector algorithm.
type Metric string

const (
	MetricCosine     Metric = "cosine"
	MetricEuclidean  Metric = "euclidean"
	MetricDotProduct Metric = "dotProduct"
)

// Field declares one field of the index.
type Field struct {
	Name       string
	Type       FieldType
	Key        bool
	Searchable bool
	Filterable bool
	Sortable   bool
	Facetable  bool

	// Dimensions and VectorProfile apply to vector fields only.
	Dimensions    int
	VectorProfile string
}

// IsVector reports whether the field holds embeddings.
func (f Field) IsVector() bool {
	return f.Type == FieldTypeVector
}

// HNSWParameters configures a hierarchical navigable small world graph.
type HNSWParameters struct {
	// M is the number of bi-directional links per node.
	M int
	// EfConstruction is the candidate list size while building the graph.
	EfConstruction int
	// EfSearch is the candidate list size while querying.
	EfSearch int
	Metric   Metric
}

// Algorithm is a named HNSW configuration.
type Algorithm struct {
	Name string
	HNSW HNSWParameters
}

// Profile binds vector fields to an algorithm.
type Profile struct {
	Name      string
	Algorithm string
}

// VectorSearch holds the algorithm and profile declarations of an index.
type VectorSearch struct {
	Algorithms []Algorithm
	Profiles   []Profile
}

// Schema is the complete shape of a vector index.
type Schema struct {
	Name         string
	Fields       []Field
	VectorSearch VectorSearch
}

// DefaultSchema returns the canonical researcher index: a string key, the
// record serialized as one searchable JSON text field, and a vector field
// searched with HNSW (m=4, efConstruction=400, efSearch=500, cosine).
func DefaultSchema(name string, dimensions int) *Schema {
	return &Schema{
		Name: name,
		Fields: []Field{
			{Name: FieldID, Type: FieldTypeString, Key: true, Filterable: true},
			{Name: FieldJSONData, Type: FieldTypeString, Searchable: true},
			{
				Name:          FieldVector,
				Type:          FieldTypeVector,
				Searchable:    true,
				Dimensions:    dimensions,
				VectorProfile: DefaultProfileName,
			},
		},
		VectorSearch: VectorSearch{
			Algorithms: []Algorithm{
				{
					Name: DefaultAlgorithmName,
					HNSW: HNSWParameters{
						M:              4,
						EfConstruction: 400,
						EfSearch:       500,
						Metric:         MetricCosine,
					},
				},
			},
			Profiles: []Profile{
				{Name: DefaultProfileName, Algorithm: DefaultAlgorithmName},
			},
		},
	}
}

// VectorField returns the schema's vector field.
func (s *Schema) VectorField() (Field, bool) {
	for _, f := range s.Fields {
		if f.IsVector() {
			return f, true
		}
	}
	return Field{}, false
}

// Dimensions returns the declared vector length, or 0 when there is no vector field.
func (s *Schema) Dimensions() int {
	f, ok := s.VectorField()
	if !ok {
		return 0
	}
	return f.Dimensions
}

// Algorithm returns the HNSW parameters bound to the vector field through its profile.
func (s *Schema) Algorithm() (Algorithm, bool) {
	ai, _ := s.algorithmIndex()
	if ai < 0 {
		return Algorithm{}, false
	}
	return s.VectorSearch.Algorithms[ai], true
}

// Validate checks the schema for internal consistency.
func (s *Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidSchema)
	}

	keys := 0
	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: field name is required", ErrInvalidSchema)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidSchema, f.Name)
		}
		seen[f.Name] = true
		if f.Key {
			keys++
		}
	}
	if keys != 1 {
		return fmt.Errorf("%w: exactly one key field required, found %d", ErrInvalidSchema, keys)
	}

	for _, name := range []string{FieldID, FieldJSONData, FieldVector} {
		if !seen[name] {
			return fmt.Errorf("%w: missing field %q", ErrInvalidSchema, name)
		}
	}

	vf, ok := s.VectorField()
	if !ok {
		return fmt.Errorf("%w: no vector field", ErrInvalidSchema)
	}
	if vf.Dimensions < 1 {
		return fmt.Errorf("%w: vector dimensions must be greater than 0", ErrInvalidSchema)
	}

	algo, ok := s.Algorithm()
	if !ok {
		return fmt.Errorf("%w: vector profile %q does not resolve to an algorithm", ErrInvalidSchema, vf.VectorProfile)
	}
	p := algo.HNSW
	if p.M < 1 || p.EfConstruction < 1 || p.EfSearch < 1 {
		return fmt.Errorf("%w: hnsw parameters must be positive", ErrInvalidSchema)
	}
	switch p.Metric {
	case MetricCosine, MetricEuclidean, MetricDotProduct:
	default:
		return fmt.Errorf("%w: unsupported metric %q", ErrInvalidSchema, p.Metric)
	}
	return nil
}

// ValidateDocuments checks every document against the schema's vector dimensions.
func (s *Schema) ValidateDocuments(docs []core.Document) error {
	dims := s.Dimensions()
	for i := range docs {
		if err := core.ValidateDocument(&docs[i], dims); err != nil {
			return err
		}
	}
	return nil
}
