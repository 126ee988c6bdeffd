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


// Package index defines the vector index port used by profindex.
//
// A vector index is an external service that stores documents alongside their
// embeddings and answers approximate nearest-neighbor queries. This package
// describes the index shape (Schema) and the operations the pipeline needs:
//
//   - Manager: create or update the index to match a Schema
//   - Uploader: store documents, overwriting by id
//   - Searcher: k-NN query by vector
//
// # Implementation Packages
//
//   - index/azure: Azure AI Search over its REST API
//   - index/qdrant: Qdrant over gRPC
//
// # Idempotency
//
// CreateOrUpdateIndex must converge: applying the same Schema twice leaves the
// index in the same shape as applying it once. UploadDocuments overwrites
// documents with matching ids, so re-running an ingestion is safe.
package index
