// Package virtualization implements the scroll-virtualization mapper
// (§4.6): scaling an oversized natural content height into a bounded
// virtual scroll range, and converting between the two coordinate spaces.
package virtualization

import "github.com/kasuganosora/vtgrid/pkg/model"

// Geometry re-exports model.ContentGeometry's computation as the entry
// point callers reach for when row count or row height changes.
func Geometry(totalRows int, rowHeight float64) model.ContentGeometry {
	return model.NewContentGeometry(totalRows, rowHeight)
}

// GetScrollTopForRow returns the virtual-space scrollTop that would place
// row r at the top of the viewport: r * rowHeight * scrollRatio (§4.6).
func GetScrollTopForRow(r int, rowHeight, scrollRatio float64) float64 {
	return float64(r) * rowHeight * scrollRatio
}

// GetRowIndexAtDisplayY returns the row index at a given viewport-relative
// Y offset, given the current virtual scrollTop: floor((viewportY +
// virtualScrollTop/scrollRatio) / rowHeight) (§4.6).
func GetRowIndexAtDisplayY(viewportY, virtualScrollTop, rowHeight, scrollRatio float64) int {
	if scrollRatio <= 0 {
		scrollRatio = 1
	}
	natural := viewportY + virtualScrollTop/scrollRatio
	idx := int(natural / rowHeight)
	if idx < 0 {
		idx = 0
	}
	return idx
}

// VisibleRange computes the strict [visibleStart, visibleEnd] in natural
// row-index space from a viewport's scrollTop (already converted to
// natural space by the caller via model.Viewport.EffectiveScrollTop), the
// content height available to rows (viewport height minus header
// height), and row height — with no overscan applied. Bounds are clamped
// to [0, totalRows-1]. The slot pool expands this by overscan separately
// (§4.7 step 1 computes the overscanned range; this function gives the
// un-padded range the end-to-end scenarios describe). With no rows or no
// positive content height it returns the empty range (0, -1).
func VisibleRange(naturalScrollTop, contentHeight, rowHeight float64, totalRows int) (start, end int) {
	if totalRows <= 0 || contentHeight <= 0 {
		return 0, -1
	}
	rawStart := int(naturalScrollTop / rowHeight)
	rawEnd := int((naturalScrollTop+contentHeight)/rowHeight+0.9999999) - 1

	start = clamp(rawStart, 0, totalRows-1)
	end = clamp(rawEnd, 0, totalRows-1)
	return start, end
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TranslateY computes a row's render offset relative to the first
// visible row, per §4.6: translateY(r) = (r - firstVisible) * rowHeight.
func TranslateY(rowIndex, firstVisible int, rowHeight float64) float64 {
	return float64(rowIndex-firstVisible) * rowHeight
}

// RowsWrapperOffset returns the virtual-space Y position at which the
// collaborator should position the wrapping container, so per-row
// offsets computed by TranslateY stay small: firstVisibleY * scrollRatio.
func RowsWrapperOffset(firstVisible int, rowHeight, scrollRatio float64) float64 {
	return float64(firstVisible) * rowHeight * scrollRatio
}
