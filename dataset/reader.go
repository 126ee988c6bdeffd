package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/profindex/core"
)

const bom = "\ufeff"

// ReadFile opens path and reads every record from it.
func ReadFile(path string) ([]*core.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return records, nil
}

// Read parses CSV data into records. Row positions are assigned starting at 1
// for the first line after the header. Any malformed row aborts the read.
func Read(r io.Reader) ([]*core.Record, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("%w: header: %w", ErrMalformedRow, err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []*core.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedRow, err)
		}

		record := &core.Record{Row: len(records) + 1}
		for column, i := range index {
			fieldSetters[column](record, row[i])
		}
		records = append(records, record)
	}

	slog.Debug("dataset read", "records", len(records), "columns", len(header))
	return records, nil
}

// columnIndex maps each required column to its position in the header.
func columnIndex(header []string) (map[string]int, error) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}

	index := make(map[string]int, len(Columns))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, known := fieldSetters[name]; !known {
			continue
		}
		if _, seen := index[name]; seen {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		index[name] = i
	}

	var missing []string
	for _, name := range Columns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return index, nil
}
