package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlocksOperationalReading(t *testing.T) {
	blocks := [][]string{
		{"Stack1", "PM", "25", "10:00 Time"},
	}
	out := parseBlocks(blocks)

	require.Contains(t, out, "Stack1")
	reading, ok := out["Stack1"]["PM"]
	require.True(t, ok)
	assert.Equal(t, "Operational", reading.Status)
	require.NotNil(t, reading.Value)
	assert.Equal(t, "25", *reading.Value)
	require.NotNil(t, reading.Time)
	assert.Equal(t, "10:00", *reading.Time)
}

func TestParseBlocksNotOperationalSentinel(t *testing.T) {
	blocks := [][]string{
		{"Stack2", "PM", notOperationalSentinel, "Time"},
	}
	out := parseBlocks(blocks)

	reading := out["Stack2"]["PM"]
	assert.Equal(t, "Not Operational", reading.Status)
	assert.Nil(t, reading.Value)
	assert.Nil(t, reading.Time)
}

func TestParseBlocksMultipleMeasurementsPerParent(t *testing.T) {
	blocks := [][]string{
		{"Stack1", "PM", "25", "10:00 Time", "SO2", "12", "10:05 Time"},
	}
	out := parseBlocks(blocks)

	assert.Len(t, out["Stack1"], 2)
	assert.Equal(t, "Operational", out["Stack1"]["SO2"].Status)
}
