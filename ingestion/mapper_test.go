package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/profindex/core"
)

func TestMapDocument(t *testing.T) {
	record := &core.Record{
		Row:           1,
		Name:          "田中太郎",
		ResearchField: "AI",
	}
	vector := []float32{0.1, 0.2, 0.3}

	doc, err := MapDocument(record, vector)
	require.NoError(t, err)

	assert.Equal(t, "1", doc.ID)
	assert.Equal(t, vector, doc.Vector)

	assert.Equal(t, record.JSON(), doc.JSONData)
	assert.Contains(t, doc.JSONData, `"氏名": "田中太郎"`)
	assert.Contains(t, doc.JSONData, `"研究分野": "AI"`)

	vector[0] = 9
	assert.Equal(t, float32(0.1), doc.Vector[0], "vector must be copied")
}

func TestMapDocumentInvalidRecord(t *testing.T) {
	_, err := MapDocument(nil, nil)
	assert.Error(t, err)

	_, err = MapDocument(&core.Record{Row: 0}, nil)
	assert.ErrorIs(t, err, core.ErrInvalidRow)
}
