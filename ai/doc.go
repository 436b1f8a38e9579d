// Copyright 2025 arXade Authors
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


// Package ai provides abstractions for the external AI services arXade
// depends on: text embeddings and text generation.
//
// The package defines interfaces so the ingestion pipeline, retrieval engine
// and request boundary depend on abstractions rather than a concrete vendor
// client.
//
//   - Embedder: generates document- and query-mode vector embeddings
//   - Generator: produces summaries and long-form research analyses
//   - Provider: aggregates the two for initialization and lifecycle
//
// Two implementation sub-packages exist:
//
//   - ai/gemini: production implementation against the Google Gemini APIs
//   - ai/mock: deterministic test doubles with no external dependencies
//
// Public constructors (gemini.NewProvider) return interface types to enforce
// abstraction; mock constructors return concrete types so tests can inject
// behavior and assert call counts.
package ai
