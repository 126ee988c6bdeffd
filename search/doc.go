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


// Package search answers free-text queries against the researcher index.
//
// A query is embedded with the same model used at ingestion time and sent to
// the index as a k-nearest-neighbor vector query. Hits come back best first.
//
// Optionally, hits whose profile text contains every term of the query are
// boosted, which lifts exact name or keyword matches above merely similar
// profiles.
package search
