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


// Package server exposes arXade over HTTP.
//
// Endpoints:
//
//	GET  /               basic API information, public
//	GET  /health         index connectivity check, public
//	POST /search         semantic paper retrieval
//	POST /gemini-summary topic summary generation
//	POST /deep-research  long-form research analysis
//
// The POST endpoints require the shared API key in the X-API-Key header.
// Summary generation degrades gracefully: a generation failure returns 200
// with a fallback summary and the error attached, since clients already
// hold usable search results at that point.
package server
