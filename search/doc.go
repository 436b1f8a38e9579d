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


// Package search implements the query-time retrieval engine.
//
// A query travels through four stages: validation, query-mode embedding,
// int8 quantization identical to the ingestion path, and an approximate
// nearest neighbor search against the paper index. Hits come back ranked by
// the index; the engine's only post-processing is projection, normalizing
// each hit's categories and deriving its primary category and PDF URL. It
// never reorders results.
package search
