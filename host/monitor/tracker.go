package monitor

import (
	"monoclock/core"
)

// Anomaly classifies a sample against the one before it.
type Anomaly int

const (
	AnomalyNone       Anomaly = iota
	AnomalyMissed             // whole periods skipped (dropped lines)
	AnomalyIrregular          // delta is not a multiple of the period
	AnomalyRegression         // clock went backwards (board reset)
	AnomalyLate               // deadline served later than the allowed lateness
	AnomalyTornRead           // now read early, or off by a carry into the high counter
)

func (a Anomaly) String() string {
	switch a {
	case AnomalyNone:
		return "none"
	case AnomalyMissed:
		return "missed"
	case AnomalyIrregular:
		return "irregular"
	case AnomalyRegression:
		return "regression"
	case AnomalyLate:
		return "late"
	case AnomalyTornRead:
		return "torn_read"
	}
	return "unknown"
}

// rank orders anomalies by how bad they are.
func (a Anomaly) rank() int {
	switch a {
	case AnomalyLate:
		return 1
	case AnomalyMissed:
		return 2
	case AnomalyIrregular:
		return 3
	case AnomalyTornRead:
		return 4
	case AnomalyRegression:
		return 5
	}
	return 0
}

func worse(a, b Anomaly) Anomaly {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

// halfRange is the largest forward step treated as progress; anything
// further is read as the counter going backwards.
const halfRange = 1 << 31

// carry is the weight of one high-counter increment. A composite read that
// pairs a high half with the wrong low half is off by a multiple of it.
const carry = 0x10000

// Stats accumulates what a Tracker has seen.
type Stats struct {
	Samples     uint64 `yaml:"samples"`
	Missed      uint64 `yaml:"missed_periods"`
	Irregular   uint64 `yaml:"irregular"`
	Regressions uint64 `yaml:"regressions"`
	Late        uint64 `yaml:"late"`
	TornReads   uint64 `yaml:"torn_reads"`
	MaxLateness uint32 `yaml:"max_lateness_cycles"`
	Wraps       uint64 `yaml:"wraps"`
	First       uint32 `yaml:"first_tick"`
	Last        uint32 `yaml:"last_tick"`
}

// Tracker checks that consecutive reports step by exactly one period and
// that the clock read at each deadline sits just after it.
type Tracker struct {
	period    core.Duration
	tolerance core.Duration
	maxLate   core.Duration
	haveLast  bool
	havePrev  bool  // prevLate is valid
	prevLate  int64 // lateness of the last sane now reading
	stats     Stats
}

// NewTracker returns a tracker for reports every period ticks, accepting
// up to tolerance ticks of error per step and deadlines served up to
// maxLate ticks late. maxLate also bounds how close to a multiple of 65536
// an error must be to count as a torn read, so keep it below 32768.
func NewTracker(period, tolerance, maxLate core.Duration) *Tracker {
	return &Tracker{period: period, tolerance: tolerance, maxLate: maxLate}
}

// Stats returns a copy of the counters so far.
func (t *Tracker) Stats() Stats {
	return t.stats
}

// Observe feeds one sample and classifies it. When a sample shows several
// problems the worst one is returned; all of them are counted.
func (t *Tracker) Observe(s Sample) Anomaly {
	t.stats.Samples++

	a := AnomalyNone
	if s.HasNow {
		a = t.observeNow(s)
	}

	if !t.haveLast {
		t.haveLast = true
		t.stats.First = s.Ticks
		t.stats.Last = s.Ticks
		return a
	}
	return worse(a, t.observeDeadline(s))
}

// observeDeadline checks the scheduled tick against the previous one.
func (t *Tracker) observeDeadline(s Sample) Anomaly {
	prev := t.stats.Last
	t.stats.Last = s.Ticks
	step := s.Ticks - prev // modulo 2^32, like Instant arithmetic on the board

	if step == 0 || step >= halfRange {
		t.stats.Regressions++
		return AnomalyRegression
	}
	if s.Ticks < prev {
		t.stats.Wraps++
	}

	delta := core.DurationFromCycles(step)
	periods, off := t.split(delta)
	if periods == 0 || off.Cmp(t.tolerance) > 0 {
		t.stats.Irregular++
		return AnomalyIrregular
	}
	if periods > 1 {
		t.stats.Missed += uint64(periods - 1)
		return AnomalyMissed
	}
	return AnomalyNone
}

// observeNow checks the clock read while serving the deadline. The
// scheduler only fires a deadline once the clock has reached it, so now
// is never before the deadline and normally only a little after it. A
// reading off by about 65536 from there, or jumping by about 65536
// against the previous reading, paired the wrong halves of the counter.
func (t *Tracker) observeNow(s Sample) Anomaly {
	lateness := int64(int32(s.Now - s.Ticks))
	slack := int64(t.maxLate.Cycles())

	torn := lateness < 0 || nearCarry(lateness, slack)
	if !torn && t.havePrev && nearCarry(lateness-t.prevLate, slack) {
		torn = true
	}
	if torn {
		t.stats.TornReads++
		return AnomalyTornRead
	}

	t.prevLate = lateness
	t.havePrev = true
	if uint32(lateness) > t.stats.MaxLateness {
		t.stats.MaxLateness = uint32(lateness)
	}
	if lateness > slack {
		t.stats.Late++
		return AnomalyLate
	}
	return AnomalyNone
}

// nearCarry reports whether v is within slack of a non-zero multiple of
// the carry weight.
func nearCarry(v, slack int64) bool {
	if v < 0 {
		v = -v
	}
	if v < carry-slack {
		return false
	}
	r := v % carry
	return r <= slack || r >= carry-slack
}

// split returns the number of whole periods nearest to delta and how far
// delta is from that many periods.
func (t *Tracker) split(delta core.Duration) (uint32, core.Duration) {
	p := t.period.Cycles()
	if p == 0 {
		return 0, delta
	}
	n := delta.Cycles() / p
	below := delta.Sub(t.period.Mul(n))
	if n+1 != 0 && uint64(p)*uint64(n+1) <= 0xFFFFFFFF {
		above := t.period.Mul(n + 1).Sub(delta)
		if above.Cmp(below) < 0 {
			return n + 1, above
		}
	}
	return n, below
}
