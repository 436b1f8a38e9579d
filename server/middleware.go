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


package server

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
)

// apiKeyHeader carries the shared client secret.
const apiKeyHeader = "X-API-Key"

// RequireAPIKey returns middleware that rejects requests missing the shared
// API key. The comparison is constant time.
func RequireAPIKey(apiKey string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get(apiKeyHeader)
			if presented == "" {
				logger.Warn("API request without API key",
					slog.String("path", r.URL.Path))
				_ = WriteUnauthorized(w, "API key required. Please include X-API-Key header.")
				return
			}

			if subtle.ConstantTimeCompare([]byte(presented), []byte(apiKey)) != 1 {
				logger.Warn("invalid API key attempt",
					slog.String("path", r.URL.Path))
				_ = WriteUnauthorized(w, "Invalid API key.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
