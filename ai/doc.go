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


// Package ai provides abstractions for the embedding service used by profindex.
//
// The package defines the Embedder interface and its configuration. Business
// logic depends on the interface, never on a concrete client, so the hosted
// service can be swapped or faked in tests.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation for Azure OpenAI and OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewEmbedder) return the ai.Embedder INTERFACE to
// prevent coupling to a concrete client. Test constructors (mock.NewMockEmbedder)
// return CONCRETE types so tests can inject behavior and read call counts.
//
// # Usage Example
//
//	config := ai.NewConfig(
//	    ai.WithEndpoint(os.Getenv("AZURE_OPENAI_ENDPOINT")),
//	    ai.WithAPIKey(os.Getenv("AZURE_OPENAI_API_KEY")),
//	)
//	embedder, err := openai.NewEmbedder(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	vector, err := embedder.EmbedText(ctx, "研究者プロフィール")
package ai
