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


// Package storage defines the persistence interfaces for arXade and the
// serialization helpers shared by their implementations.
//
// Two concerns live here:
//
//   - PaperIndex: approximate nearest neighbor search over the quantized
//     paper corpus. The production implementation is storage/mongo, which
//     runs Atlas $vectorSearch aggregations.
//   - CheckpointRepository: durable ingestion progress, so interrupted
//     embedding runs resume where they left off. The production
//     implementation is storage/badger, an embedded key-value store local
//     to the machine running the pipeline.
//
// All implementations must be thread-safe and support concurrent access.
package storage
