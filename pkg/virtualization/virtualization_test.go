package virtualization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeometryWithinBound(t *testing.T) {
	g := Geometry(10_000, 32)
	assert.Equal(t, float64(1), g.ScrollRatio)
}

func TestScenarioScrollVirtualization(t *testing.T) {
	// Scenario 2: rowHeight=32, totalRows=1,500,000.
	g := Geometry(1_500_000, 32)
	assert.Equal(t, float64(48_000_000), g.NaturalHeight)
	assert.InDelta(t, 0.2083, g.ScrollRatio, 0.001)

	scrollTop := GetScrollTopForRow(750_000, 32, g.ScrollRatio)
	assert.InDelta(t, 5_000_000, scrollTop, 1000)

	row := GetRowIndexAtDisplayY(0, scrollTop, 32, g.ScrollRatio)
	assert.Equal(t, 750_000, row)
}

func TestScenarioViewportAlignment(t *testing.T) {
	// Scenario 1: rowHeight=32, headerHeight=40, viewport=800x600,
	// totalRows=10000, scrollTop=0.
	start, end := VisibleRange(0, 600-40, 32, 10_000)
	assert.Equal(t, 0, start)
	assert.Equal(t, 17, end)
}

func TestVisibleRangeClampsToBounds(t *testing.T) {
	start, end := VisibleRange(0, 600, 32, 5)
	assert.Equal(t, 0, start)
	assert.Equal(t, 4, end)
}

func TestVisibleRangeEmptyWhenNoRows(t *testing.T) {
	start, end := VisibleRange(0, 600, 32, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, -1, end)
}

func TestTranslateYRelativeToFirstVisible(t *testing.T) {
	assert.Equal(t, float64(0), TranslateY(10, 10, 32))
	assert.Equal(t, float64(320), TranslateY(20, 10, 32))
}
