package ai

import "errors"

// ErrEmptyEmbedding is returned when the service responds without a vector.
var ErrEmptyEmbedding = errors.New("embedding service returned no vectors")
