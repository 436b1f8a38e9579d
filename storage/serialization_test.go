package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arxade/arxade/core"
)

func TestCheckpointSerialization(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		original := &core.Checkpoint{
			InputOffset: 125000,
			Embedded:    124880,
			UpdatedAt:   time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
		}

		data := MarshalCheckpoint(original)
		restored, err := UnmarshalCheckpoint(data)
		require.NoError(t, err)

		assert.Equal(t, original.InputOffset, restored.InputOffset)
		assert.Equal(t, original.Embedded, restored.Embedded)
		assert.True(t, original.UpdatedAt.Equal(restored.UpdatedAt))
	})

	t.Run("zero value", func(t *testing.T) {
		data := MarshalCheckpoint(&core.Checkpoint{})
		restored, err := UnmarshalCheckpoint(data)
		require.NoError(t, err)

		assert.Equal(t, uint64(0), restored.InputOffset)
		assert.Equal(t, uint64(0), restored.Embedded)
	})

	t.Run("truncated data", func(t *testing.T) {
		data := MarshalCheckpoint(&core.Checkpoint{
			InputOffset: 1 << 40,
			Embedded:    1 << 40,
			UpdatedAt:   time.Now(),
		})

		_, err := UnmarshalCheckpoint(data[:1])
		assert.Error(t, err)
	})
}
