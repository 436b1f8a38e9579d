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


// Package ingestion implements the offline embedding pipeline that prepares
// the arXiv corpus for vector search.
//
// The pipeline streams paper records as JSON Lines, batches them into
// embedding API requests under a requests-per-minute quota, quantizes each
// returned vector to int8 and writes every input record back out with an
// embedding_int8 field appended. All other fields pass through untouched.
//
// Failure handling is deliberately lossy: a batch that fails or returns a
// mismatched number of vectors is dropped and the run continues, so a small
// number of bad batches never stalls a multi-hour corpus run. Only a
// rejected API credential aborts the run. Progress can be checkpointed
// through a storage.CheckpointRepository so interrupted runs resume from
// the last completed batch.
package ingestion
