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


// Package qdrant implements index.Store on a Qdrant collection over gRPC.
//
// The schema maps onto a collection as follows: the vector field becomes the
// collection's single unnamed vector (size = dimensions, distance = metric),
// the HNSW parameters become the collection's hnsw_config, and efSearch is sent
// with every query. Documents become points whose payload carries the id and
// json_data fields; numeric ids are used directly as point ids.
package qdrant
