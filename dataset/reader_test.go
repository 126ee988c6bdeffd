package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "氏名,生年月日,学歴,研究分野,研究実績,表彰実績,自己紹介,アピール\n"

func TestRead_SingleRow(t *testing.T) {
	input := header + "田中太郎,1980-01-01,東京大学,AI,論文10本,学会賞,こんにちは,熱意があります\n"

	records, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, 1, r.Row)
	assert.Equal(t, "田中太郎", r.Name)
	assert.Equal(t, "1980-01-01", r.BirthDate)
	assert.Equal(t, "東京大学", r.Education)
	assert.Equal(t, "AI", r.ResearchField)
	assert.Equal(t, "論文10本", r.Achievements)
	assert.Equal(t, "学会賞", r.Awards)
	assert.Equal(t, "こんにちは", r.SelfIntro)
	assert.Equal(t, "熱意があります", r.Appeal)
}

func TestRead_RowPositions(t *testing.T) {
	var b strings.Builder
	b.WriteString(header)
	for i := 0; i < 5; i++ {
		b.WriteString("name,,,,,,,\n")
	}

	records, err := Read(strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Len(t, records, 5)
	for i, r := range records {
		assert.Equal(t, i+1, r.Row)
	}
}

func TestRead_ValuesVerbatim(t *testing.T) {
	input := header + "\"  山田 花子 \",1990/4/1,\"京都大学\n博士課程\",\"NLP, 情報検索\",,,\"\"\"引用\"\"\",  \n"

	records, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "  山田 花子 ", r.Name)
	assert.Equal(t, "1990/4/1", r.BirthDate)
	assert.Equal(t, "京都大学\n博士課程", r.Education)
	assert.Equal(t, "NLP, 情報検索", r.ResearchField)
	assert.Equal(t, "", r.Achievements)
	assert.Equal(t, `"引用"`, r.SelfIntro)
	assert.Equal(t, "  ", r.Appeal)
}

func TestRead_ByteOrderMark(t *testing.T) {
	input := "\ufeff" + header + "田中太郎,,,AI,,,,\n"

	records, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "田中太郎", records[0].Name)
}

func TestRead_ReorderedAndExtraColumns(t *testing.T) {
	input := "研究分野,備考,アピール,自己紹介,表彰実績,研究実績,学歴,生年月日,氏名\n" +
		"AI,ignored,a,b,c,d,e,f,田中太郎\n"

	records, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "田中太郎", records[0].Name)
	assert.Equal(t, "AI", records[0].ResearchField)
	assert.Equal(t, "a", records[0].Appeal)
	assert.Equal(t, "f", records[0].BirthDate)
}

func TestRead_HeaderOnly(t *testing.T) {
	records, err := Read(strings.NewReader(header))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrNoHeader,
		},
		{
			name:    "missing column",
			input:   "氏名,研究分野\n田中太郎,AI\n",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "duplicate column",
			input:   strings.TrimSuffix(header, "\n") + ",氏名\n",
			wantErr: ErrDuplicateColumn,
		},
		{
			name:    "short row",
			input:   header + "田中太郎,AI\n",
			wantErr: ErrMalformedRow,
		},
		{
			name:    "unterminated quote",
			input:   header + "\"田中太郎,,,,,,,\n",
			wantErr: ErrMalformedRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRead_MissingColumnListsNames(t *testing.T) {
	_, err := Read(strings.NewReader("氏名\n田中太郎\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "研究分野")
	assert.Contains(t, err.Error(), "アピール")
	assert.NotContains(t, err.Error(), "氏名,")
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "researchers.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+"田中太郎,,,AI,,,,\n"), 0644))

	records, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "AI", records[0].ResearchField)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
