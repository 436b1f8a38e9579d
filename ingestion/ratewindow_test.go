package ingestion

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	current time.Time
	slept   []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.current = c.current.Add(d)
}

func (c *fakeClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRateWindow_UnderQuota(t *testing.T) {
	clock := newFakeClock()
	w := newRateWindow(3, clock.now, clock.sleep, discardLogger())

	for i := 0; i < 3; i++ {
		w.Wait()
		w.Record()
	}

	assert.Empty(t, clock.slept)
}

func TestRateWindow_SleepsWhenExhausted(t *testing.T) {
	clock := newFakeClock()
	w := newRateWindow(2, clock.now, clock.sleep, discardLogger())

	w.Wait()
	w.Record()
	clock.advance(10 * time.Second)
	w.Wait()
	w.Record()
	clock.advance(10 * time.Second)

	// Third request arrives 20s into the window; the remaining 40s must
	// be slept out.
	w.Wait()

	assert.Equal(t, []time.Duration{40 * time.Second}, clock.slept)
}

func TestRateWindow_ResetsAfterMinute(t *testing.T) {
	clock := newFakeClock()
	w := newRateWindow(1, clock.now, clock.sleep, discardLogger())

	w.Wait()
	w.Record()

	clock.advance(61 * time.Second)
	w.Wait()
	w.Record()

	assert.Empty(t, clock.slept)
}

func TestRateWindow_QuotaAvailableAfterSleep(t *testing.T) {
	clock := newFakeClock()
	w := newRateWindow(1, clock.now, clock.sleep, discardLogger())

	w.Wait()
	w.Record()
	w.Wait() // sleeps out the window and resets
	w.Record()
	w.Wait()

	assert.Len(t, clock.slept, 2)
}
