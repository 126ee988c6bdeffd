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


// Package storage provides local persistence for profindex.
//
// The only stored data is the embedding cache: vectors already computed for a
// given model and input text, so a failed ingestion can be re-run without
// paying for embeddings that succeeded the first time.
//
// # Constructor Return Type Pattern
//
// Public constructors return interfaces:
//
//	cache, err := badger.NewEmbeddingCache(dir)  // returns storage.EmbeddingCache
//
// Internal constructors may return concrete types.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use. The ingestion pipeline
// reads and writes the cache from several workers at once.
package storage
