package core

import "testing"

func TestBindConsumesPair(t *testing.T) {
	pair, _ := NewSimTimerPair()
	if pair.Bound() {
		t.Fatal("Fresh pair should not be bound")
	}

	armed := Bind(pair)
	if armed == nil {
		t.Fatal("Bind returned nil")
	}
	if !pair.Bound() {
		t.Error("Pair should be empty after Bind")
	}

	expectPanic(t, ErrPairConsumed, func() {
		Bind(pair)
	})
	expectPanic(t, ErrPairConsumed, func() {
		Bind(nil)
	})
}

func TestBindLeavesCountersRunning(t *testing.T) {
	pair, sim := NewSimTimerPair()
	sim.Load(0x0003, 0x0400)

	armed := Bind(pair)
	if !sim.High().Enabled() || !sim.Low().Enabled() {
		t.Error("Bind should not stop the counters")
	}
	if sim.Value() != 0x00030400 {
		t.Errorf("Bind should not touch the count, got %#x", sim.Value())
	}

	// Reading while armed is allowed.
	if got := armed.Now().Ticks(); got != 0x00030400 {
		t.Errorf("Armed Now() = %#x, want 0x00030400", got)
	}
}

func TestResetClearsBothCounters(t *testing.T) {
	pair, sim := NewSimTimerPair()
	sim.Load(0x1234, 0xBEEF)

	clock := Bind(pair).Reset()

	if sim.Value() != 0 {
		t.Fatalf("Expected both counters cleared, got %#x", sim.Value())
	}
	if !sim.High().Enabled() || !sim.Low().Enabled() {
		t.Error("Reset should leave both counters enabled")
	}
	if got := clock.Now().Ticks(); got != 0 {
		t.Errorf("Now() right after reset = %d, want 0", got)
	}

	sim.Advance(12)
	if got := clock.Now().Ticks(); got != 12 {
		t.Errorf("Now() after 12 ticks = %d, want 12", got)
	}
}

// recordingCounter logs register operations so the reset order can be checked.
type recordingCounter struct {
	name  string
	log   *[]string
	count uint16
	on    bool
}

func (r *recordingCounter) Enabled() bool { return r.on }

func (r *recordingCounter) SetEnabled(enabled bool) {
	r.on = enabled
	if enabled {
		*r.log = append(*r.log, r.name+".enable")
	} else {
		*r.log = append(*r.log, r.name+".disable")
	}
}

func (r *recordingCounter) Count() uint16 { return r.count }

func (r *recordingCounter) Clear() {
	r.count = 0
	*r.log = append(*r.log, r.name+".clear")
}

func TestResetOrder(t *testing.T) {
	var log []string
	high := &recordingCounter{name: "high", log: &log, count: 7, on: true}
	low := &recordingCounter{name: "low", log: &log, count: 9, on: true}

	Bind(NewTimerPair(high, low)).Reset()

	want := []string{
		"high.disable", "low.disable",
		"high.clear", "low.clear",
		"high.enable", "low.enable",
	}
	if len(log) != len(want) {
		t.Fatalf("Expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("Step %d: expected %s, got %s", i, want[i], log[i])
		}
	}
	if high.count != 0 || low.count != 0 {
		t.Errorf("Expected both counts zero, got high=%d low=%d", high.count, low.count)
	}
}

func TestResetTwicePanics(t *testing.T) {
	pair, _ := NewSimTimerPair()
	armed := Bind(pair)
	armed.Reset()

	expectPanic(t, ErrAlreadyReset, func() {
		armed.Reset()
	})
}

func TestClockRatioAndZero(t *testing.T) {
	pair, _ := NewSimTimerPair()
	armed := Bind(pair)
	running := armed.Reset()

	for _, c := range []Clock{armed, running} {
		r := c.Ratio()
		if r.Numerator != 1 || r.Denominator != 1 {
			t.Errorf("Expected identity ratio, got %+v", r)
		}
		if c.Zero().Ticks() != 0 {
			t.Errorf("Zero() = %v", c.Zero())
		}
	}

	r := running.Ratio()
	for _, ticks := range []uint32{0, 1, 6301, 0xFFFFFFFF} {
		if got := r.ToSystem(ticks); got != uint64(ticks) {
			t.Errorf("ToSystem(%d) = %d", ticks, got)
		}
		if got := r.FromSystem(uint64(ticks)); got != uint64(ticks) {
			t.Errorf("FromSystem(%d) = %d", ticks, got)
		}
	}
}

func TestFractionScaling(t *testing.T) {
	f := Fraction{Numerator: 4, Denominator: 1}
	if got := f.ToSystem(1000); got != 4000 {
		t.Errorf("ToSystem = %d, want 4000", got)
	}
	if got := f.FromSystem(4000); got != 1000 {
		t.Errorf("FromSystem = %d, want 1000", got)
	}
}

func TestFractionZeroTermPanics(t *testing.T) {
	tests := []Fraction{
		{},
		{Numerator: 0, Denominator: 1},
		{Numerator: 1, Denominator: 0},
	}
	for _, f := range tests {
		expectPanic(t, ErrZeroRatio, func() { f.ToSystem(5) })
		expectPanic(t, ErrZeroRatio, func() { f.FromSystem(5) })
	}
}

func TestBindAndResetAreRecorded(t *testing.T) {
	ClearTimingRing()
	pair, _ := NewSimTimerPair()
	Bind(pair).Reset()

	events := TimingEvents()
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %+v", events)
	}
	if events[0].EventType != EvtBind || events[1].EventType != EvtResetClock {
		t.Errorf("Unexpected events %+v", events)
	}
}

func TestDebugOutput(t *testing.T) {
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	defer SetDebugWriter(func(string) {})

	if IsDebugEnabled() {
		t.Fatal("Debug output should be off by default")
	}
	SetDebugEnabled(true)
	defer SetDebugEnabled(false)
	if !IsDebugEnabled() {
		t.Fatal("SetDebugEnabled(true) did not take")
	}

	ClearTimingRing()
	pair, _ := NewSimTimerPair()
	Bind(pair).Reset()

	if len(lines) != 2 || lines[0] != "[CLOCK] timer pair bound" || lines[1] != "[CLOCK] counters reset" {
		t.Errorf("Unexpected debug output %q", lines)
	}

	lines = nil
	DumpTimingRing()
	if len(lines) != 4 {
		t.Fatalf("Expected header, 2 events, footer; got %q", lines)
	}
	if lines[1] != "[TIMING] BIND id=0 clock=0 v1=0 v2=0" {
		t.Errorf("Unexpected dump line %q", lines[1])
	}
}
