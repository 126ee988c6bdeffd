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


// Package openai provides the ai.Embedder implementation for Azure OpenAI
// and OpenAI-compatible embedding APIs.
//
// The embedder is built on the langchaingo OpenAI client. In Azure mode the
// configured embedding model is used as the deployment name and requests carry
// the configured api-version.
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithEndpoint("https://my-resource.openai.azure.com"),
//	    ai.WithAPIKey(key),
//	)
//
//	embedder, err := openai.NewEmbedder(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	vector, err := embedder.EmbedText(ctx, "sample text")
package openai
