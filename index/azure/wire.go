package azure

import (
	"github.com/poiesic/profindex/core"
	"github.com/poiesic/profindex/index"
)

// Wire types for the Azure AI Search REST API.

type indexDefinition struct {
	Name         string        `json:"name"`
	Fields       []fieldDef    `json:"fields"`
	VectorSearch *vectorSearch `json:"vectorSearch,omitempty"`
}

type fieldDef struct {
	Name                string `json:"name"`
	Type                string `json:"type"`
	Key                 bool   `json:"key"`
	Searchable          bool   `json:"searchable"`
	Filterable          bool   `json:"filterable"`
	Sortable            bool   `json:"sortable"`
	Facetable           bool   `json:"facetable"`
	Retrievable         bool   `json:"retrievable"`
	Dimensions          int    `json:"dimensions,omitempty"`
	VectorSearchProfile string `json:"vectorSearchProfile,omitempty"`
}

type vectorSearch struct {
	Algorithms []algorithmDef `json:"algorithms"`
	Profiles   []profileDef   `json:"profiles"`
}

type algorithmDef struct {
	Name           string         `json:"name"`
	Kind           string         `json:"kind"`
	HNSWParameters hnswParameters `json:"hnswParameters"`
}

type hnswParameters struct {
	M              int    `json:"m"`
	EfConstruction int    `json:"efConstruction"`
	EfSearch       int    `json:"efSearch"`
	Metric         string `json:"metric"`
}

type profileDef struct {
	Name      string `json:"name"`
	Algorithm string `json:"algorithm"`
}

type uploadAction struct {
	Action   string    `json:"@search.action"`
	ID       string    `json:"id"`
	JSONData string    `json:"json_data"`
	Vector   []float32 `json:"vector"`
}

type uploadRequest struct {
	Value []uploadAction `json:"value"`
}

type uploadStatus struct {
	Key          string  `json:"key"`
	Status       bool    `json:"status"`
	ErrorMessage *string `json:"errorMessage"`
	StatusCode   int     `json:"statusCode"`
}

type uploadResponse struct {
	Value []uploadStatus `json:"value"`
}

type vectorQuery struct {
	Kind   string    `json:"kind"`
	Vector []float32 `json:"vector"`
	Fields string    `json:"fields"`
	K      int       `json:"k"`
}

type searchRequest struct {
	Select        string        `json:"select"`
	Top           int           `json:"top"`
	VectorQueries []vectorQuery `json:"vectorQueries"`
}

type searchResult struct {
	Score    float64 `json:"@search.score"`
	ID       string  `json:"id"`
	JSONData string  `json:"json_data"`
}

type searchResponse struct {
	Value []searchResult `json:"value"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func toIndexDefinition(s *index.Schema) indexDefinition {
	def := indexDefinition{
		Name:   s.Name,
		Fields: make([]fieldDef, 0, len(s.Fields)),
	}
	for _, f := range s.Fields {
		def.Fields = append(def.Fields, fieldDef{
			Name:                f.Name,
			Type:                string(f.Type),
			Key:                 f.Key,
			Searchable:          f.Searchable,
			Filterable:          f.Filterable,
			Sortable:            f.Sortable,
			Facetable:           f.Facetable,
			Retrievable:         true,
			Dimensions:          f.Dimensions,
			VectorSearchProfile: f.VectorProfile,
		})
	}

	if len(s.VectorSearch.Algorithms) == 0 {
		return def
	}
	vs := &vectorSearch{}
	for _, a := range s.VectorSearch.Algorithms {
		vs.Algorithms = append(vs.Algorithms, algorithmDef{
			Name: a.Name,
			Kind: "hnsw",
			HNSWParameters: hnswParameters{
				M:              a.HNSW.M,
				EfConstruction: a.HNSW.EfConstruction,
				EfSearch:       a.HNSW.EfSearch,
				Metric:         string(a.HNSW.Metric),
			},
		})
	}
	for _, p := range s.VectorSearch.Profiles {
		vs.Profiles = append(vs.Profiles, profileDef(p))
	}
	def.VectorSearch = vs
	return def
}

func toUploadRequest(docs []core.Document) uploadRequest {
	req := uploadRequest{Value: make([]uploadAction, len(docs))}
	for i, d := range docs {
		req.Value[i] = uploadAction{
			Action:   "upload",
			ID:       d.ID,
			JSONData: d.JSONData,
			Vector:   d.Vector,
		}
	}
	return req
}
