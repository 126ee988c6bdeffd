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


// Package profindex indexes researcher profiles for semantic search.
//
// Profiles are read from a CSV file, each row is embedded through a hosted
// embedding API, and the rows are uploaded with their vectors into a vector
// index (Azure AI Search or Qdrant). The same index answers similarity queries.
//
// Basic usage:
//
//	idx, err := profindex.NewFromEnv(os.LookupEnv)
//	if err != nil {
//	    return err
//	}
//	defer idx.Close()
//
//	if err := idx.EnsureIndex(ctx); err != nil {
//	    return err
//	}
//	result, err := idx.IngestFile(ctx, "researchers.csv")
//
// Component packages:
//
//   - dataset: CSV reader
//   - ai, ai/openai: embedding client
//   - index, index/azure, index/qdrant: vector index port and backends
//   - ingestion: embed, map and upload pipeline
//   - search: query side
//   - storage, storage/badger: embedding cache
//   - config: environment configuration
package profindex
