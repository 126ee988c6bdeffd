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


// Package azure implements index.Store on the Azure AI Search REST API.
//
// Requests authenticate with the admin key in the api-key header and pin the
// API version with the api-version query parameter. Index definitions are
// applied with PUT, which creates the index or replaces its definition.
// Documents are written with the "upload" action, which inserts or overwrites
// by key. A 207 response to an upload means the service accepted the batch but
// rejected some documents; those are reported in index.UploadResult.Failed.
package azure
