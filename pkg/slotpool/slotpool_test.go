package slotpool

import (
	"testing"

	"github.com/kasuganosora/vtgrid/pkg/bus"
	"github.com/kasuganosora/vtgrid/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allRowsHaveData(int) bool { return true }

func TestScenarioViewportAlignmentCreatesExpectedSlots(t *testing.T) {
	p := New()
	b := bus.New()
	var batch []bus.Instruction
	b.SubscribeBatch(func(i []bus.Instruction) { batch = append(batch, i...) })

	vp := model.Viewport{ScrollTop: 0, Width: 800, Height: 600}
	p.SyncSlots(vp, 1, 10_000, 32, 40, DefaultOverscan, allRowsHaveData, b)

	created := 0
	for _, instr := range batch {
		if instr.Kind == bus.CreateSlot {
			created++
		}
	}
	assert.Equal(t, 21, created)
	assert.Equal(t, 21, p.SlotCount())
}

func TestSlotRecyclingAwayFromBoundaryHasNoCreateOrDestroy(t *testing.T) {
	// Both positions sit away from row 0, so overscan is never clamped
	// and the visible window keeps a constant size: a one-row scroll
	// should purely recycle, with no new allocation or destruction.
	p := New()
	b := bus.New()

	vp := model.Viewport{ScrollTop: 320, Width: 800, Height: 600} // row 10 at top
	p.SyncSlots(vp, 1, 10_000, 32, 40, DefaultOverscan, allRowsHaveData, b)
	before := p.SlotCount()

	var batch []bus.Instruction
	b.SubscribeBatch(func(i []bus.Instruction) { batch = append(batch, i...) })

	vp2 := model.Viewport{ScrollTop: 352, Width: 800, Height: 600} // row 11 at top
	p.SyncSlots(vp2, 1, 10_000, 32, 40, DefaultOverscan, allRowsHaveData, b)

	for _, instr := range batch {
		assert.NotEqual(t, bus.CreateSlot, instr.Kind)
		assert.NotEqual(t, bus.DestroySlot, instr.Kind)
	}
	require.NotEmpty(t, batch)
	assert.Equal(t, before, p.SlotCount())
}

func TestNoRowsVisibleDestroysAllSlots(t *testing.T) {
	p := New()
	b := bus.New()
	vp := model.Viewport{ScrollTop: 0, Width: 800, Height: 600}
	p.SyncSlots(vp, 1, 10, 32, 40, DefaultOverscan, allRowsHaveData, b)
	require.Greater(t, p.SlotCount(), 0)

	var batch []bus.Instruction
	b.SubscribeBatch(func(i []bus.Instruction) { batch = append(batch, i...) })
	p.SyncSlots(vp, 1, 0, 32, 40, DefaultOverscan, allRowsHaveData, b)

	assert.Equal(t, 0, p.SlotCount())
	for _, instr := range batch {
		assert.Equal(t, bus.DestroySlot, instr.Kind)
	}
}

func TestUpdateSlotEmitsSingleAssign(t *testing.T) {
	p := New()
	b := bus.New()
	vp := model.Viewport{ScrollTop: 0, Width: 800, Height: 600}
	p.SyncSlots(vp, 1, 10, 32, 40, DefaultOverscan, allRowsHaveData, b)

	var emitted []bus.Instruction
	b.Subscribe(func(i bus.Instruction) { emitted = append(emitted, i) })
	p.UpdateSlot(0, b)
	require.Len(t, emitted, 1)
	assert.Equal(t, bus.AssignSlot, emitted[0].Kind)
}

func TestRowsWithoutDataSkipEmission(t *testing.T) {
	p := New()
	b := bus.New()
	vp := model.Viewport{ScrollTop: 0, Width: 800, Height: 600}
	p.SyncSlots(vp, 1, 10, 32, 40, DefaultOverscan, func(r int) bool { return r != 2 }, b)
	assert.Equal(t, 9, p.SlotCount())
}
