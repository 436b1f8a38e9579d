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


package ingestion

import (
	"log/slog"
	"time"
)

// rateWindow enforces a requests-per-minute quota with a fixed 60 second
// window. The throttle is advisory: it only counts requests the caller
// records, so it protects the quota without coordinating across processes.
//
// now and sleep are injectable so tests run without wall-clock delays.
type rateWindow struct {
	limit       int
	windowStart time.Time
	requests    int

	now    func() time.Time
	sleep  func(time.Duration)
	logger *slog.Logger
}

func newRateWindow(limit int, now func() time.Time, sleep func(time.Duration), logger *slog.Logger) *rateWindow {
	w := &rateWindow{
		limit:  limit,
		now:    now,
		sleep:  sleep,
		logger: logger,
	}
	w.windowStart = w.now()
	return w
}

// Wait blocks until the next request fits inside the quota. It rolls the
// window forward when 60 seconds have passed, and otherwise sleeps out the
// remainder of the window when the quota is exhausted.
func (w *rateWindow) Wait() {
	current := w.now()
	if current.Sub(w.windowStart) >= time.Minute {
		w.windowStart = current
		w.requests = 0
	}

	if w.requests >= w.limit {
		waitTime := time.Minute - current.Sub(w.windowStart)
		if waitTime > 0 {
			w.logger.Info("rate limit reached, waiting",
				slog.Duration("wait", waitTime.Round(100*time.Millisecond)))
			w.sleep(waitTime)
		}
		w.windowStart = w.now()
		w.requests = 0
	}
}

// Record counts one request against the current window.
func (w *rateWindow) Record() {
	w.requests++
}
