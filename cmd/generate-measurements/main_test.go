package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/chunkbench/internal/stations"
)

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()
	var a, b bytes.Buffer
	require.NoError(t, generate(&a, 500, 5, 42))
	require.NoError(t, generate(&b, 500, 5, 42))
	assert.Equal(t, a.String(), b.String())

	var c bytes.Buffer
	require.NoError(t, generate(&c, 500, 5, 43))
	assert.NotEqual(t, a.String(), c.String())
}

func TestGenerateProducesParsableLines(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, generate(&buf, 1000, 3, 7))

	lines, err := stations.ReadLines(&buf)
	require.NoError(t, err)
	require.Len(t, lines, 1000)

	result := stations.Result{}
	require.NoError(t, stations.ParseLines(lines, result))
	assert.LessOrEqual(t, len(result), 3)
	for name, s := range result {
		assert.Contains(t, stationNames[:3], name)
		assert.GreaterOrEqual(t, s.Min, minTenths)
		assert.LessOrEqual(t, s.Max, maxTenths)
	}
}

func TestGenerateUsesOneDecimalValues(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, generate(&buf, 2000, 5, 3))

	lines, err := stations.ReadLines(&buf)
	require.NoError(t, err)
	oddTenths := false
	for _, line := range lines {
		_, raw, ok := strings.Cut(line, stations.Separator)
		require.True(t, ok, line)
		dot := strings.IndexByte(raw, '.')
		require.Equal(t, len(raw)-2, dot, "value %q should carry exactly one decimal", raw)
		if raw[dot+1] != '0' && raw[dot+1] != '5' {
			oddTenths = true
		}
	}
	assert.True(t, oddTenths, "expected values that are not multiples of 0.5")
}

func TestGenerateRejectsBadArguments(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		lines    int
		stations int
		field    string
	}{
		{"negative lines", -1, 3, "n"},
		{"no stations", 10, 0, "stations"},
		{"too many stations", 10, len(stationNames) + 1, "stations"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := generate(&buf, tt.lines, tt.stations, 1)
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.field))
			assert.Zero(t, buf.Len())
		})
	}
}
