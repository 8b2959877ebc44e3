package peakram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqElements int32 values are ~38.1 MiB.
const seqElements = 10_000_000

// sink retains allocations across protocol steps so net figures reflect a
// survivor. Tests must nil it when done.
var sink any

func sequence() []int32 {
	s := make([]int32, seqElements)
	for i := range s {
		s[i] = int32(i + 1)
	}
	return s
}

func TestHeapAccountant_CollectSemantics(t *testing.T) {
	h := NewHeapAccountant(HeapAccountantConfig{}).(*heapAccountant)
	t.Cleanup(func() { sink = nil })

	s1, err := h.Collect(true)
	require.NoError(t, err)
	assert.InDelta(t, s1.Current, s1.Peak, 0.001, "reset must rebase peak to current")

	sink = make([]byte, 64<<20)
	s2, err := h.Collect(false)
	require.NoError(t, err)
	assert.InDelta(t, 64, s2.Current-s1.Current, 8)
	assert.GreaterOrEqual(t, s2.Peak-s1.Peak, 56.0)

	sink = nil
	s3, err := h.Collect(true)
	require.NoError(t, err)
	assert.InDelta(t, s1.Current, s3.Current, 8)
	assert.InDelta(t, s3.Current, s3.Peak, 0.001)
}

func TestRun_RetainedAllocationReportsItsSize(t *testing.T) {
	t.Cleanup(func() { sink = nil })

	table, err := Run(Config{SampleInterval: time.Millisecond},
		F("sequence(1e7)", func() any {
			sink = sequence()
			return nil
		}))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	row := table.Rows[0]
	assert.GreaterOrEqual(t, row.ElapsedTimeSec, 0.0)
	assert.InDelta(t, 38.1, row.TotalRAMUsedMiB, 5)
	assert.GreaterOrEqual(t, row.PeakRAMUsedMiB, row.TotalRAMUsedMiB-0.001)
}

func TestRun_ThunkWrappingIsTransparent(t *testing.T) {
	t.Cleanup(func() { sink = nil })
	cfg := Config{SampleInterval: time.Millisecond}

	direct, err := Run(cfg, F("sequence(1e7)", func() any {
		sink = sequence()
		return nil
	}))
	require.NoError(t, err)
	sink = nil

	wrapped, err := Run(cfg, F("func() { sequence(1e7) }", func() any {
		return Thunk(func() any {
			sink = sequence()
			return nil
		})
	}))
	require.NoError(t, err)

	assert.InDelta(t, direct.Rows[0].TotalRAMUsedMiB, wrapped.Rows[0].TotalRAMUsedMiB, 6)
	assert.InDelta(t, direct.Rows[0].PeakRAMUsedMiB, wrapped.Rows[0].PeakRAMUsedMiB, 10)
}

func TestRun_TwoTemporariesDoubleThePeak(t *testing.T) {
	t.Cleanup(func() { sink = nil })
	cfg := Config{SampleInterval: time.Millisecond}

	single, err := Run(cfg, F("sequence(1e7)", func() any {
		sink = sequence()
		return nil
	}))
	require.NoError(t, err)
	sink = nil

	// Two full-size sequences are live at once, only one survives.
	double, err := Run(cfg, F("sum(sequence(1e7))", func() any {
		a := sequence()
		c := make([]int32, seqElements)
		for i := range a {
			c[i] = a[i] + a[i]
		}
		sink = c
		return nil
	}))
	require.NoError(t, err)

	assert.InDelta(t, single.Rows[0].TotalRAMUsedMiB, double.Rows[0].TotalRAMUsedMiB, 6)
	assert.InDelta(t, 76.3, double.Rows[0].PeakRAMUsedMiB, 12)
	assert.Greater(t, double.Rows[0].PeakRAMUsedMiB, single.Rows[0].PeakRAMUsedMiB*1.5)
}

func TestRun_FreeingUnitReportsNegativeTotal(t *testing.T) {
	t.Cleanup(func() { sink = nil })

	table, err := Run(Config{SampleInterval: time.Millisecond},
		F("retain", func() any {
			sink = sequence()
			return nil
		}),
		F("release", func() any {
			sink = nil
			return nil
		}))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	// The release frees the previous unit's survivor: a real signal,
	// reported as-is.
	assert.InDelta(t, -38.1, table.Rows[1].TotalRAMUsedMiB, 5)
	assert.InDelta(t, 0, table.Rows[1].PeakRAMUsedMiB, 3)
}

func TestMeasure_DefaultConfig(t *testing.T) {
	table, err := Measure(F("nothing", func() any { return nil }))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.GreaterOrEqual(t, table.Rows[0].ElapsedTimeSec, 0.0)
}
