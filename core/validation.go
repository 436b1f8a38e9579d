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
	"fmt"
	"strings"
)

const (
	// MaxQueryLength is the maximum accepted query text length.
	MaxQueryLength = 500

	// DefaultResultLimit is the result limit applied when none is requested.
	DefaultResultLimit = 50

	// MaxResultLimit is the maximum accepted result limit.
	MaxResultLimit = 100
)

// ApplyDefaults fills in the default result limit when none was requested.
func (q *SearchQuery) ApplyDefaults() {
	if q.Limit == 0 {
		q.Limit = DefaultResultLimit
	}
}

// ValidateSearchQuery validates a SearchQuery according to domain rules.
//
// Validation rules:
//   - Query must not be empty or whitespace-only
//   - Query must not exceed MaxQueryLength
//   - Limit must be in [1, MaxResultLimit]
//
// Validation runs before any external call is made.
func ValidateSearchQuery(q *SearchQuery) error {
	if q == nil {
		return fmt.Errorf("%w: query is nil", ErrInvalidQuery)
	}

	if strings.TrimSpace(q.Query) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, ErrEmptyQuery)
	}

	if len(q.Query) > MaxQueryLength {
		return fmt.Errorf("%w: %w: %d > %d", ErrInvalidQuery, ErrQueryTooLong, len(q.Query), MaxQueryLength)
	}

	if q.Limit < 1 || q.Limit > MaxResultLimit {
		return fmt.Errorf("%w: %w: %d", ErrInvalidQuery, ErrLimitOutOfRange, q.Limit)
	}

	return nil
}
