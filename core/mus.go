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


package core

import (
	"time"

	"github.com/mus-format/mus-go/varint"
)

// CheckpointMUS serializes Checkpoint values in the MUS format. UpdatedAt is
// encoded as Unix microseconds, so sub-microsecond precision is not
// round-tripped.
var CheckpointMUS = checkpointMUS{}

type checkpointMUS struct{}

func (checkpointMUS) Marshal(v Checkpoint, bs []byte) (n int) {
	n = varint.Uint64.Marshal(v.InputOffset, bs)
	n += varint.Uint64.Marshal(v.Embedded, bs[n:])
	n += varint.Int64.Marshal(v.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (checkpointMUS) Unmarshal(bs []byte) (v Checkpoint, n int, err error) {
	v.InputOffset, n, err = varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Embedded, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var usec int64
	usec, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt = time.UnixMicro(usec).UTC()
	return
}

func (checkpointMUS) Size(v Checkpoint) (size int) {
	size = varint.Uint64.Size(v.InputOffset)
	size += varint.Uint64.Size(v.Embedded)
	size += varint.Int64.Size(v.UpdatedAt.UnixMicro())
	return size
}
