// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateRecord validates a Record according to domain rules.
//
// Validation rules:
//   - Row must be a 1-based position
//
// Field contents are not validated: empty cells are carried through verbatim.
func ValidateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("record is nil")
	}
	if record.Row < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidRow, record.Row)
	}
	return nil
}

// ValidateVector checks that a vector has exactly the expected number of dimensions.
func ValidateVector(vector []float32, dimensions int) error {
	if len(vector) != dimensions {
		return fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, dimensions, len(vector))
	}
	return nil
}

// ValidateDocument validates a Document before upload.
//
// Validation rules:
//   - ID must not be empty
//   - JSONData must not be empty
//   - Vector length must equal dimensions
func ValidateDocument(doc *Document, dimensions int) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if doc.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyID)
	}
	if doc.JSONData == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyJSONData)
	}
	if err := ValidateVector(doc.Vector, dimensions); err != nil {
		return fmt.Errorf("%w: document %s: %w", ErrInvalidDocument, doc.ID, err)
	}
	return nil
}
