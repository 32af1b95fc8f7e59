package dash

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResampleSeries_Downsample(t *testing.T) {
	data := []float64{1, 9, 2, 3, 8, 4}

	out := resampleSeries(data, 3)

	require.Len(t, out, 3)
	// Max-based buckets preserve the spikes.
	assert.Equal(t, 9.0, out[0])
	assert.Equal(t, 8.0, out[2])
}

func TestResampleSeries_Upsample(t *testing.T) {
	out := resampleSeries([]float64{0, 10}, 5)

	require.Len(t, out, 5)
	assert.Equal(t, 0.0, out[0])
	assert.Equal(t, 10.0, out[4])
	assert.InDelta(t, 5.0, out[2], 0.001)
}

func TestResampleSeries_SingleValue(t *testing.T) {
	out := resampleSeries([]float64{36.5}, 4)

	require.Len(t, out, 4)
	for _, v := range out {
		assert.Equal(t, 36.5, v)
	}
}

func TestResampleSeries_Empty(t *testing.T) {
	assert.Nil(t, resampleSeries(nil, 4))
	assert.Nil(t, resampleSeries([]float64{1}, 0))
}

func TestTempBounds(t *testing.T) {
	lo, hi := tempBounds([]float64{35.0, 37.0})
	assert.Less(t, lo, 35.0)
	assert.Greater(t, hi, 37.0)

	// A flat series still spans a visible range.
	lo, hi = tempBounds([]float64{36.5, 36.5})
	assert.Less(t, lo, 36.5)
	assert.Greater(t, hi, 36.5)

	lo, hi = tempBounds(nil)
	assert.Less(t, lo, hi)
}

func TestRenderBrailleChart_Dimensions(t *testing.T) {
	data := []float64{36.1, 36.4, 36.2, 36.8, 36.5, 36.3, 36.9, 36.0}

	out := RenderBrailleChart(data, 10, 3, lipgloss.Color("#00FFFF"))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, 10, lipgloss.Width(line))
	}
}

func TestRenderBrailleChart_Empty(t *testing.T) {
	assert.Equal(t, "", RenderBrailleChart(nil, 10, 3, lipgloss.Color("#00FFFF")))
	assert.Equal(t, "", RenderBrailleChart([]float64{1}, 0, 3, lipgloss.Color("#00FFFF")))
	assert.Equal(t, "", RenderBrailleChart([]float64{1}, 10, 0, lipgloss.Color("#00FFFF")))
}

func TestRenderSparkline_Width(t *testing.T) {
	data := []float64{36.1, 36.9, 36.4}

	out := RenderSparkline(data, 12, lipgloss.Color("#00FFFF"))

	assert.Equal(t, 12, lipgloss.Width(out))
}

func TestRenderSparkline_Empty(t *testing.T) {
	assert.Equal(t, "", RenderSparkline(nil, 12, lipgloss.Color("#00FFFF")))
}
