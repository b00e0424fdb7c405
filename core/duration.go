package core

// Duration is a non-negative span of monotonic ticks.
//
// Unlike Instant, arithmetic on Duration is checked: a result outside
// 0..2^32-1 is a scheduling bug upstream and panics.
type Duration struct {
	inner uint32
}

// DurationFromCycles returns a Duration of n ticks.
func DurationFromCycles(n uint32) Duration {
	return Duration{inner: n}
}

// Cycles returns the number of ticks in d.
func (d Duration) Cycles() uint32 {
	return d.inner
}

// Uint32 returns d in the width of a timer compare register. It never fails.
func (d Duration) Uint32() uint32 {
	return d.inner
}

// Add returns d+o. It panics with ErrDurationOverflow past 2^32-1.
func (d Duration) Add(o Duration) Duration {
	sum := d.inner + o.inner
	if sum < d.inner {
		panic(ErrDurationOverflow)
	}
	return Duration{inner: sum}
}

// Sub returns d-o. It panics with ErrDurationUnderflow if o > d.
func (d Duration) Sub(o Duration) Duration {
	if o.inner > d.inner {
		panic(ErrDurationUnderflow)
	}
	return Duration{inner: d.inner - o.inner}
}

// Mul returns d added to itself k times. It panics with ErrDurationOverflow
// past 2^32-1.
func (d Duration) Mul(k uint32) Duration {
	p := uint64(d.inner) * uint64(k)
	if p > 0xFFFFFFFF {
		panic(ErrDurationOverflow)
	}
	return Duration{inner: uint32(p)}
}

// AddAssign is d = d.Add(o).
func (d *Duration) AddAssign(o Duration) {
	*d = d.Add(o)
}

// SubAssign is d = d.Sub(o).
func (d *Duration) SubAssign(o Duration) {
	*d = d.Sub(o)
}

// MulAssign is d = d.Mul(k).
func (d *Duration) MulAssign(k uint32) {
	*d = d.Mul(k)
}

// Cmp returns -1, 0 or +1 as d is shorter than, equal to, or longer than o.
func (d Duration) Cmp(o Duration) int {
	switch {
	case d.inner < o.inner:
		return -1
	case d.inner > o.inner:
		return 1
	}
	return 0
}

// IsZero reports whether d is empty.
func (d Duration) IsZero() bool {
	return d.inner == 0
}

func (d Duration) String() string {
	return "Duration(" + utoa(d.inner) + ")"
}
