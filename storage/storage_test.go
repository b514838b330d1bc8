package storage_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/on-the-ground/dyn_fn_go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dropCounter struct {
	count *atomic.Int32
}

func (d dropCounter) Dispose() {
	d.count.Add(1)
}

func newDropCounter() (dropCounter, *atomic.Int32) {
	count := &atomic.Int32{}
	return dropCounter{count: count}, count
}

var dropLayout = storage.LayoutOf[dropCounter]()

func bigEnough() storage.Capacity {
	return storage.NewCapacity(dropLayout.Size, dropLayout.Align)
}

func TestSlots_DisposeExactlyOnce(t *testing.T) {
	table := storage.NewReleaseTable[dropCounter]()
	require.True(t, table.NeedsDispose())

	cases := map[string]func(v any) storage.Slot{
		"inline": func(v any) storage.Slot {
			return storage.NewInline(v, dropLayout, bigEnough())
		},
		"boxed": func(v any) storage.Slot {
			return storage.NewBoxed(v)
		},
		"adaptive_inline": func(v any) storage.Slot {
			return storage.NewAdaptive(v, dropLayout, bigEnough())
		},
		"adaptive_boxed": func(v any) storage.Slot {
			return storage.NewAdaptive(v, dropLayout, storage.NewCapacity(1, 1))
		},
		"shared_local": func(v any) storage.Slot {
			return storage.NewSharedLocal(v)
		},
		"shared_atomic": func(v any) storage.Slot {
			return storage.NewSharedAtomic(v)
		},
	}

	for name, build := range cases {
		t.Run(name, func(t *testing.T) {
			counter, count := newDropCounter()
			slot := build(counter)

			got, ok := slot.Get().(dropCounter)
			require.True(t, ok)
			assert.Zero(t, got.count.Load())

			slot.Release(table)
			assert.Equal(t, int32(1), count.Load())

			// releasing the same handle again must not double-dispose
			slot.Release(table)
			assert.Equal(t, int32(1), count.Load())
		})
	}
}

func TestReleaseTable_NoDisposerNoHook(t *testing.T) {
	table := storage.NewReleaseTable[int]()
	assert.False(t, table.NeedsDispose())

	slot := storage.NewBoxed(42)
	slot.Release(table)
}

func TestNewCapacity_ZeroFieldsClampToWordDefaults(t *testing.T) {
	assert.Equal(t, storage.DefaultCapacity(), storage.NewCapacity(0, 0))

	half := storage.NewCapacity(128, 0)
	assert.Equal(t, uintptr(128), half.Size)
	assert.Equal(t, storage.DefaultCapacity().Align, half.Align)
}

func TestInline_CapacityViolationPanics(t *testing.T) {
	lay := storage.LayoutOf[[8]uint64]()

	assert.Panics(t, func() {
		storage.NewInline([8]uint64{}, lay, storage.NewCapacity(8, 8))
	})
	assert.Panics(t, func() {
		// size fits, alignment does not
		storage.NewInline(uint64(0), storage.LayoutOf[uint64](), storage.NewCapacity(64, 1))
	})
}

func TestInline_RoundTripMaximalLayout(t *testing.T) {
	type payload = [4]uint64
	lay := storage.LayoutOf[payload]()
	cap := storage.NewCapacity(lay.Size, lay.Align)

	want := payload{0xdeadbeef, 0xcafebabe, ^uint64(0), 1}
	slot := storage.NewInline(want, lay, cap)

	got, ok := slot.Get().(payload)
	if !ok {
		t.Fatalf("unexpected type from inline slot: %T", slot.Get())
	}
	if got != want {
		t.Fatalf("round-trip mismatch: got %v, want %v", got, want)
	}
}

func TestAdaptive_VariantSelection(t *testing.T) {
	lay := storage.LayoutOf[[4]uint64]()

	atThreshold := storage.NewAdaptive([4]uint64{}, lay, storage.NewCapacity(lay.Size, lay.Align))
	assert.True(t, atThreshold.IsInline())

	justAbove := storage.NewAdaptive([4]uint64{}, lay, storage.NewCapacity(lay.Size-1, lay.Align))
	assert.False(t, justAbove.IsInline())

	misaligned := storage.NewAdaptive(uint64(0), storage.LayoutOf[uint64](), storage.NewCapacity(64, 1))
	assert.False(t, misaligned.IsInline())
}

func TestMoveOut_SkipsDispose(t *testing.T) {
	table := storage.NewReleaseTable[dropCounter]()
	counter, count := newDropCounter()

	slot := storage.NewBoxed(counter)
	v, moved := storage.MoveOut(slot)
	moved.Release(table)

	if count.Load() != 0 {
		t.Fatal("dispose ran for a moved-out value")
	}

	// ownership transferred: the taker destroys the value
	v.(storage.Disposer).Dispose()
	if count.Load() != 1 {
		t.Fatalf("expected exactly one dispose, got %d", count.Load())
	}
}

func TestMutSlots_TakeTwicePanics(t *testing.T) {
	table := storage.NewReleaseTable[int]()
	_ = table

	slots := map[string]storage.MutSlot{
		"inline":   storage.NewInline(1, storage.LayoutOf[int](), storage.DefaultCapacity()),
		"boxed":    storage.NewBoxed(1),
		"adaptive": storage.NewAdaptive(1, storage.LayoutOf[int](), storage.DefaultCapacity()),
	}
	for name, slot := range slots {
		t.Run(name, func(t *testing.T) {
			_ = slot.Take()
			assert.Panics(t, func() { _ = slot.Take() })
		})
	}
}

func TestSharedLocal_DisposeAfterLastHandle(t *testing.T) {
	table := storage.NewReleaseTable[dropCounter]()
	counter, count := newDropCounter()

	first := storage.NewSharedLocal(counter)
	const n = 5
	handles := make([]*storage.SharedLocal, 0, n)
	for i := 0; i < n; i++ {
		handles = append(handles, first.Clone())
	}

	first.Release(table)
	for i, h := range handles {
		if count.Load() != 0 && i < n-1 {
			t.Fatal("disposed before the last handle was released")
		}
		h.Release(table)
	}
	if count.Load() != 1 {
		t.Fatalf("expected exactly one dispose, got %d", count.Load())
	}
}

func TestSharedAtomic_ConcurrentCloneRelease(t *testing.T) {
	table := storage.NewReleaseTable[dropCounter]()
	counter, count := newDropCounter()

	root := storage.NewSharedAtomic(counter)

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			h := root.Clone()
			_ = h.Get()
			h.Release(table)
		}()
	}
	wg.Wait()

	assert.Zero(t, count.Load())
	root.Release(table)
	assert.Equal(t, int32(1), count.Load())
}

func TestShared_UseAfterReleasePanics(t *testing.T) {
	table := storage.NewReleaseTable[int]()

	local := storage.NewSharedLocal(1)
	clone := local.Clone()
	local.Release(table)
	clone.Release(table)
	assert.Panics(t, func() { clone.Get() })

	assert.Panics(t, func() { local.Clone() })
}

func TestReleaseTableOf_DynamicType(t *testing.T) {
	counter, count := newDropCounter()

	table := storage.NewReleaseTableOf(counter)
	require.True(t, table.NeedsDispose())
	assert.Equal(t, storage.LayoutOf[dropCounter](), table.Layout())

	slot := storage.NewBoxed(counter)
	slot.Release(table)
	assert.Equal(t, int32(1), count.Load())

	assert.False(t, storage.NewReleaseTableOf(42).NeedsDispose())
	assert.False(t, storage.NewReleaseTableOf(nil).NeedsDispose())
}
