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


package index

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSchema indicates a schema failed validation.
	ErrInvalidSchema = errors.New("invalid index schema")

	// ErrIndexMismatch indicates a schema names a different index than the store is bound to.
	ErrIndexMismatch = errors.New("schema index name does not match store")

	// ErrUnknownBackend indicates an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown index backend")
)

// ServiceError is returned when the index service rejects a request.
type ServiceError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("index %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("index %s: status %d: %s", e.Op, e.StatusCode, e.Message)
}
