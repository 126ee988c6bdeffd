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


// Package config assembles component configuration from environment variables.
//
// Embedding service (always required):
//
//	AZURE_OPENAI_API_KEY
//	AZURE_OPENAI_ENDPOINT
//
// Azure AI Search backend (required when the backend is azure, the default):
//
//	AZURE_SEARCH_API_KEY
//	AZURE_SEARCH_ENDPOINT
//	AZURE_SEARCH_INDEX_NAME
//
// Qdrant backend (required when PROFINDEX_BACKEND=qdrant):
//
//	QDRANT_ENDPOINT        host:port of the gRPC API
//	QDRANT_COLLECTION
//
// Optional:
//
//	AZURE_OPENAI_API_VERSION       default 2023-07-01-preview
//	AZURE_OPENAI_EMBEDDING_MODEL   default text-embedding-3-large
//	PROFINDEX_EMBEDDING_API        azure (default) or openai
//	AZURE_SEARCH_API_VERSION       default 2023-11-01
//	QDRANT_API_KEY                 sent only over TLS
//	QDRANT_USE_TLS                 true to use TLS without an API key
//	PROFINDEX_BACKEND              azure (default) or qdrant
//	PROFINDEX_CACHE_DIR            enables the embedding cache
//
// Every missing required variable is reported at once, before any client is
// constructed.
package config
