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


package ingestion

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrUploaderRequired is returned when an index uploader is not provided.
	ErrUploaderRequired = errors.New("index uploader required")

	// ErrInvalidMaxAttempts is returned when maxAttempts is not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrDuplicateID is returned when two records map to the same document id.
	ErrDuplicateID = errors.New("duplicate document id")

	// ErrRowOutOfSequence is returned when record rows are not 1..N in slice order.
	ErrRowOutOfSequence = errors.New("record rows must be numbered 1..N in order")

	// ErrEmbeddingFailed wraps the first embedding error of a run.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrPartialUpload is returned when the index rejected some documents.
	ErrPartialUpload = errors.New("index rejected some documents")
)
