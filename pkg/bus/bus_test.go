package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitReachesSingleAndBatchListeners(t *testing.T) {
	b := New()
	var single []Instruction
	var batches [][]Instruction
	b.Subscribe(func(i Instruction) { single = append(single, i) })
	b.SubscribeBatch(func(batch []Instruction) { batches = append(batches, batch) })

	b.Emit(Instruction{Kind: CreateSlot, SlotId: 1})

	require.Len(t, single, 1)
	assert.Equal(t, CreateSlot, single[0].Kind)
	require.Len(t, batches, 1)
	assert.Len(t, batches[0], 1)
}

func TestEmitBatchDeliveryOrder(t *testing.T) {
	b := New()
	var single []Kind
	var batchLens []int
	b.Subscribe(func(i Instruction) { single = append(single, i.Kind) })
	b.SubscribeBatch(func(batch []Instruction) { batchLens = append(batchLens, len(batch)) })

	b.EmitBatch([]Instruction{{Kind: CreateSlot}, {Kind: AssignSlot}, {Kind: MoveSlot}})

	assert.Equal(t, []Kind{CreateSlot, AssignSlot, MoveSlot}, single)
	require.Len(t, batchLens, 1)
	assert.Equal(t, 3, batchLens[0])
}

func TestEmptyBatchSuppressed(t *testing.T) {
	b := New()
	called := false
	b.SubscribeBatch(func(batch []Instruction) { called = true })
	b.EmitBatch(nil)
	assert.False(t, called)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	count := 0
	unsub := b.Subscribe(func(i Instruction) { count++ })
	b.Emit(Instruction{Kind: CreateSlot})
	unsub()
	b.Emit(Instruction{Kind: CreateSlot})
	assert.Equal(t, 1, count)
}

func TestRegistrationOrderPreserved(t *testing.T) {
	b := New()
	var order []int
	b.Subscribe(func(i Instruction) { order = append(order, 1) })
	b.Subscribe(func(i Instruction) { order = append(order, 2) })
	b.Emit(Instruction{Kind: CreateSlot})
	assert.Equal(t, []int{1, 2}, order)
}
