package ingestion

import (
	"slices"

	"github.com/poiesic/profindex/core"
)

// MapDocument builds the index document for a record and its embedding.
// The id is the record's row position and json_data is the record's JSON text.
func MapDocument(record *core.Record, vector []float32) (core.Document, error) {
	if err := core.ValidateRecord(record); err != nil {
		return core.Document{}, err
	}
	return core.Document{
		ID:       core.DocumentID(record.Row),
		JSONData: record.JSON(),
		Vector:   slices.Clone(vector),
	}, nil
}
