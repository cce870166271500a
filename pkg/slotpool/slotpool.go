// Package slotpool implements the slot pool (§4.7): a recyclable pool of
// rendering anchors assigned to visible rows, reconciled against the
// current viewport on every syncSlots pass and emitting instructions
// through the bus.
//
// Grounded on the teacher's workerpool.RowPool (sync.Pool-backed reuse
// with alloc/reuse/return counters): the same discipline — clear state on
// return, track reuse rate — here applies to model.Slot values recycled
// across viewport scrolls instead of to row maps recycled across query
// batches.
package slotpool

import (
	"sync/atomic"

	"github.com/kasuganosora/vtgrid/pkg/bus"
	"github.com/kasuganosora/vtgrid/pkg/model"
	"github.com/kasuganosora/vtgrid/pkg/virtualization"
)

// DefaultOverscan is the number of rows rendered beyond the strict
// visible range (§4.7, glossary).
const DefaultOverscan = 3

// Pool owns the slotId -> slot map, its inverse rowIndex -> slotId map,
// and the monotonically increasing id counter (§4.7).
type Pool struct {
	slots       map[int]*model.Slot
	byRowIndex  map[int]int
	nextSlotID  int64
	allocCount  int64
	reuseCount  int64
}

// New creates an empty slot pool.
func New() *Pool {
	return &Pool{
		slots:      make(map[int]*model.Slot),
		byRowIndex: make(map[int]int),
	}
}

// Stats reports cumulative allocation/reuse counters, useful for callers
// tuning overscan.
type Stats struct {
	Allocations int64
	Reuses      int64
	LiveSlots   int
}

func (p *Pool) Stats() Stats {
	return Stats{
		Allocations: atomic.LoadInt64(&p.allocCount),
		Reuses:      atomic.LoadInt64(&p.reuseCount),
		LiveSlots:   len(p.slots),
	}
}

// rowHasData reports whether rowIndex has a cached row available; callers
// without cached data skip slot emission for that row (§4.7 step 5).
type RowHasData func(rowIndex int) bool

// SyncSlots reconciles the slot pool against the current viewport,
// emitting all instructions for this pass as a single batch (§4.7).
func (p *Pool) SyncSlots(
	viewport model.Viewport,
	scrollRatio float64,
	totalRows int,
	rowHeight, headerHeight float64,
	overscan int,
	hasData RowHasData,
	b *bus.Bus,
) {
	var batch []bus.Instruction

	naturalScrollTop := viewport.EffectiveScrollTop(scrollRatio)
	strictStart, strictEnd := virtualization.VisibleRange(naturalScrollTop, viewport.Height-headerHeight, rowHeight, totalRows)

	if strictEnd < strictStart {
		// No rows visible: destroy every existing slot and clear state.
		for slotID := range p.slots {
			batch = append(batch, bus.Instruction{Kind: bus.DestroySlot, SlotId: slotID})
		}
		p.slots = make(map[int]*model.Slot)
		p.byRowIndex = make(map[int]int)
		b.EmitBatch(batch)
		return
	}

	visibleStart := clampNonNegative(strictStart - overscan)
	visibleEnd := strictEnd + overscan
	if visibleEnd > totalRows-1 {
		visibleEnd = totalRows - 1
	}

	required := make(map[int]struct{}, visibleEnd-visibleStart+1)
	for r := visibleStart; r <= visibleEnd; r++ {
		required[r] = struct{}{}
	}

	recycleList := make([]int, 0)
	for rowIndex, slotID := range p.byRowIndex {
		if _, ok := required[rowIndex]; !ok {
			recycleList = append(recycleList, slotID)
			delete(p.byRowIndex, rowIndex)
		}
	}

	for r := visibleStart; r <= visibleEnd; r++ {
		if !hasData(r) {
			continue
		}
		if _, already := p.byRowIndex[r]; already {
			continue
		}

		translateY := virtualization.TranslateY(r, visibleStart, rowHeight)

		if len(recycleList) > 0 {
			slotID := recycleList[len(recycleList)-1]
			recycleList = recycleList[:len(recycleList)-1]
			slot := p.slots[slotID]
			slot.RowIndex = r
			slot.TranslateY = translateY
			p.byRowIndex[r] = slotID
			atomic.AddInt64(&p.reuseCount, 1)
			batch = append(batch,
				bus.Instruction{Kind: bus.AssignSlot, SlotId: slotID, RowIndex: r},
				bus.Instruction{Kind: bus.MoveSlot, SlotId: slotID, TranslateY: translateY},
			)
			continue
		}

		slotID := int(atomic.AddInt64(&p.nextSlotID, 1))
		p.slots[slotID] = &model.Slot{SlotId: slotID, RowIndex: r, TranslateY: translateY}
		p.byRowIndex[r] = slotID
		atomic.AddInt64(&p.allocCount, 1)
		batch = append(batch,
			bus.Instruction{Kind: bus.CreateSlot, SlotId: slotID, RowIndex: r},
			bus.Instruction{Kind: bus.AssignSlot, SlotId: slotID, RowIndex: r},
			bus.Instruction{Kind: bus.MoveSlot, SlotId: slotID, TranslateY: translateY},
		)
	}

	for _, slotID := range recycleList {
		delete(p.slots, slotID)
		batch = append(batch, bus.Instruction{Kind: bus.DestroySlot, SlotId: slotID})
	}

	for _, slotID := range p.byRowIndex {
		slot := p.slots[slotID]
		wantY := virtualization.TranslateY(slot.RowIndex, visibleStart, rowHeight)
		if wantY != slot.TranslateY {
			slot.TranslateY = wantY
			batch = append(batch, bus.Instruction{Kind: bus.MoveSlot, SlotId: slotID, TranslateY: wantY})
		}
	}

	b.EmitBatch(batch)
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// RefreshAllSlots re-emits ASSIGN_SLOT + MOVE_SLOT for every currently
// held slot whose row index remains in range, then reconciles out-of-
// range slots via SyncSlots (§4.7).
func (p *Pool) RefreshAllSlots(
	viewport model.Viewport,
	scrollRatio float64,
	totalRows int,
	rowHeight, headerHeight float64,
	overscan int,
	hasData RowHasData,
	b *bus.Bus,
) {
	var batch []bus.Instruction
	for rowIndex, slotID := range p.byRowIndex {
		if rowIndex < 0 || rowIndex >= totalRows {
			continue
		}
		slot := p.slots[slotID]
		batch = append(batch,
			bus.Instruction{Kind: bus.AssignSlot, SlotId: slotID, RowIndex: rowIndex},
			bus.Instruction{Kind: bus.MoveSlot, SlotId: slotID, TranslateY: slot.TranslateY},
		)
	}
	b.EmitBatch(batch)
	p.SyncSlots(viewport, scrollRatio, totalRows, rowHeight, headerHeight, overscan, hasData, b)
}

// UpdateSlot re-emits a single ASSIGN_SLOT for the slot currently holding
// rowIndex, if any (§4.7).
func (p *Pool) UpdateSlot(rowIndex int, b *bus.Bus) {
	slotID, ok := p.byRowIndex[rowIndex]
	if !ok {
		return
	}
	b.Emit(bus.Instruction{Kind: bus.AssignSlot, SlotId: slotID, RowIndex: rowIndex})
}

// SlotCount returns the number of live slots, for the testable slot-count
// bound invariant (§8.3).
func (p *Pool) SlotCount() int {
	return len(p.slots)
}
