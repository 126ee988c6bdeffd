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


package dataset

import "errors"

var (
	// ErrNoHeader is returned when the input contains no header row.
	ErrNoHeader = errors.New("csv has no header row")

	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("required column missing")

	// ErrDuplicateColumn is returned when a required column appears more than once.
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrMalformedRow is returned when a data row cannot be parsed.
	ErrMalformedRow = errors.New("malformed csv row")
)
