package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"monoclock/core"
)

func newTestTracker(tolerance uint32) *Tracker {
	return NewTracker(
		core.DurationFromCycles(core.BlinkPeriodCycles),
		core.DurationFromCycles(tolerance),
		core.DurationFromCycles(DefaultMaxLate),
	)
}

func feed(tr *Tracker, ticks ...uint32) []Anomaly {
	out := make([]Anomaly, 0, len(ticks))
	for i, tk := range ticks {
		out = append(out, tr.Observe(Sample{Ticks: tk, Line: i + 1}))
	}
	return out
}

func TestTrackerRegularReports(t *testing.T) {
	tr := newTestTracker(0)
	got := feed(tr, 6301, 12602, 18903, 25204)

	assert.Equal(t, []Anomaly{AnomalyNone, AnomalyNone, AnomalyNone, AnomalyNone}, got)
	st := tr.Stats()
	assert.Equal(t, uint64(4), st.Samples)
	assert.Equal(t, uint32(6301), st.First)
	assert.Equal(t, uint32(25204), st.Last)
	assert.Zero(t, st.Missed)
	assert.Zero(t, st.Irregular)
}

func TestTrackerMissedReports(t *testing.T) {
	tr := newTestTracker(0)
	got := feed(tr, 6301, 6301*4)

	assert.Equal(t, AnomalyMissed, got[1])
	assert.Equal(t, uint64(2), tr.Stats().Missed)
}

func TestTrackerIrregularAndTolerance(t *testing.T) {
	strict := newTestTracker(0)
	assert.Equal(t, AnomalyIrregular, feed(strict, 1000, 1000+6305)[1])
	assert.Equal(t, AnomalyIrregular, feed(newTestTracker(0), 1000, 1100)[1])

	loose := newTestTracker(8)
	assert.Equal(t, AnomalyNone, feed(loose, 1000, 1000+6305)[1])
	assert.Equal(t, AnomalyNone, feed(newTestTracker(8), 1000, 1000+6295)[1])
	assert.Equal(t, AnomalyMissed, feed(newTestTracker(8), 1000, 1000+2*6301+3)[1])
}

func TestTrackerRegression(t *testing.T) {
	tr := newTestTracker(0)
	got := feed(tr, 50000, 6301, 6301)

	assert.Equal(t, AnomalyRegression, got[1])
	assert.Equal(t, AnomalyRegression, got[2])
	assert.Equal(t, uint64(2), tr.Stats().Regressions)
}

func TestTrackerAcrossWrap(t *testing.T) {
	tr := newTestTracker(0)
	before := uint32(0xFFFFFFFF - 100)
	after := before + 6301 // wraps

	assert.Equal(t, AnomalyNone, feed(tr, before, after)[1])
	assert.Equal(t, uint64(1), tr.Stats().Wraps)
}

func TestAnomalyString(t *testing.T) {
	assert.Equal(t, "none", AnomalyNone.String())
	assert.Equal(t, "missed", AnomalyMissed.String())
	assert.Equal(t, "irregular", AnomalyIrregular.String())
	assert.Equal(t, "regression", AnomalyRegression.String())
	assert.Equal(t, "late", AnomalyLate.String())
	assert.Equal(t, "torn_read", AnomalyTornRead.String())
	assert.Equal(t, "unknown", Anomaly(42).String())
}

// report builds a sample for the deadline at tick ticks served lateness
// cycles after it.
func report(ticks uint32, lateness int32) Sample {
	return Sample{Ticks: ticks, Now: ticks + uint32(lateness), HasNow: true}
}

func TestTrackerServedOnTime(t *testing.T) {
	tr := newTestTracker(0)
	for i, late := range []int32{5, 7, 4, 120} {
		assert.Equal(t, AnomalyNone, tr.Observe(report(uint32(i+1)*6301, late)), "sample %d", i)
	}
	st := tr.Stats()
	assert.Zero(t, st.Late)
	assert.Zero(t, st.TornReads)
	assert.Equal(t, uint32(120), st.MaxLateness)
}

func TestTrackerLate(t *testing.T) {
	tr := newTestTracker(0)
	assert.Equal(t, AnomalyNone, tr.Observe(report(6301, 5)))
	assert.Equal(t, AnomalyLate, tr.Observe(report(12602, DefaultMaxLate+1)))
	assert.Equal(t, AnomalyNone, tr.Observe(report(18903, 5)))

	st := tr.Stats()
	assert.Equal(t, uint64(1), st.Late)
	assert.Zero(t, st.TornReads)
	assert.Equal(t, uint32(DefaultMaxLate+1), st.MaxLateness)
}

func TestTrackerTornReads(t *testing.T) {
	tests := []struct {
		name     string
		lateness int32
	}{
		{"high half read after the carry", 0x10000 + 5},
		{"high half read before the carry", -0x10000 + 5},
		{"two carries ahead", 2*0x10000 - 3},
		{"before the deadline", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTracker(0)
			assert.Equal(t, AnomalyNone, tr.Observe(report(6301, 5)))
			assert.Equal(t, AnomalyTornRead, tr.Observe(report(12602, tt.lateness)))
			assert.Equal(t, AnomalyNone, tr.Observe(report(18903, 6)))

			st := tr.Stats()
			assert.Equal(t, uint64(1), st.TornReads)
			assert.Zero(t, st.Late)
			assert.Equal(t, uint32(6), st.MaxLateness)
		})
	}
}

func TestTrackerTornReadJump(t *testing.T) {
	// A board that always serves deadlines late: the offset alone is not a
	// carry multiple, but the jump against the previous reading is.
	tr := NewTracker(
		core.DurationFromCycles(core.BlinkPeriodCycles),
		core.DurationFromCycles(0),
		core.DurationFromCycles(20000),
	)
	assert.Equal(t, AnomalyLate, tr.Observe(report(6301, 25000)))
	assert.Equal(t, AnomalyTornRead, tr.Observe(report(12602, 25000+0x10000)))
	assert.Equal(t, AnomalyLate, tr.Observe(report(18903, 25010)))

	st := tr.Stats()
	assert.Equal(t, uint64(1), st.TornReads)
	assert.Equal(t, uint64(2), st.Late)
}

func TestTrackerWorstAnomalyWins(t *testing.T) {
	tr := newTestTracker(0)
	tr.Observe(report(6301, 5))
	// Skipped a period and read torn: the torn read is reported, both counted.
	assert.Equal(t, AnomalyTornRead, tr.Observe(report(6301*3, 0x10000+5)))

	st := tr.Stats()
	assert.Equal(t, uint64(1), st.Missed)
	assert.Equal(t, uint64(1), st.TornReads)
}
