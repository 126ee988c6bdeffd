package core

import (
	"errors"
	"testing"
)

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *Record
		wantErr error
	}{
		{
			name:    "valid record",
			record:  &Record{Row: 1, Name: "田中太郎"},
			wantErr: nil,
		},
		{
			name:    "empty fields are allowed",
			record:  &Record{Row: 3},
			wantErr: nil,
		},
		{
			name:    "zero row",
			record:  &Record{Row: 0},
			wantErr: ErrInvalidRow,
		},
		{
			name:    "negative row",
			record:  &Record{Row: -1},
			wantErr: ErrInvalidRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecord(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateRecord() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateRecord() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("nil record", func(t *testing.T) {
		if err := ValidateRecord(nil); err == nil {
			t.Error("ValidateRecord(nil) should fail")
		}
	})
}

func TestValidateVector(t *testing.T) {
	if err := ValidateVector(make([]float32, 4), 4); err != nil {
		t.Errorf("ValidateVector() unexpected error = %v", err)
	}
	if err := ValidateVector(make([]float32, 3), 4); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("ValidateVector() error = %v, want %v", err, ErrDimensionMismatch)
	}
	if err := ValidateVector(nil, DefaultDimensions); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("ValidateVector(nil) error = %v, want %v", err, ErrDimensionMismatch)
	}
}

func TestValidateDocument(t *testing.T) {
	valid := func() *Document {
		return &Document{ID: "1", JSONData: `{"氏名":"田中太郎"}`, Vector: make([]float32, 8)}
	}

	tests := []struct {
		name    string
		mutate  func(d *Document) *Document
		wantErr error
	}{
		{
			name:    "valid document",
			mutate:  func(d *Document) *Document { return d },
			wantErr: nil,
		},
		{
			name:    "nil document",
			mutate:  func(d *Document) *Document { return nil },
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "empty id",
			mutate:  func(d *Document) *Document { d.ID = ""; return d },
			wantErr: ErrEmptyID,
		},
		{
			name:    "empty json data",
			mutate:  func(d *Document) *Document { d.JSONData = ""; return d },
			wantErr: ErrEmptyJSONData,
		},
		{
			name:    "short vector",
			mutate:  func(d *Document) *Document { d.Vector = d.Vector[:7]; return d },
			wantErr: ErrDimensionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.mutate(valid()), 8)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocument() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("ValidateDocument() error should wrap ErrInvalidDocument, got %v", err)
			}
		})
	}
}
