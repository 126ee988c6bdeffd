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


// Package ingestion turns researcher records into indexed documents.
//
// A Pipeline runs in three stages:
//
//  1. Embed: each record's JSON text is sent to the embedder. Vectors come
//     back in row order regardless of worker count.
//  2. Map: each record and its vector become a core.Document with id equal
//     to the record's row position.
//  3. Upload: documents are sent to the index in batches.
//
// The embed stage finishes for every record before the first upload starts.
// Any embedding failure aborts the run with nothing uploaded.
//
// Retries, client-side rate limiting, parallel workers and the embedding cache
// are all optional. With no options a Pipeline embeds sequentially with one
// attempt per record.
//
// Usage:
//
//	p, err := ingestion.NewPipeline(embedder, store,
//	    ingestion.WithBatchSize(100),
//	    ingestion.WithMaxAttempts(3),
//	)
//	if err != nil {
//	    return err
//	}
//	defer p.Release()
//
//	result, err := p.Run(ctx, records)
package ingestion
