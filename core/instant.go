package core

// Instant is a reading of the monotonic counter. It has no epoch; it only
// means something relative to other instants from the same clock.
//
// Comparison and differences use the raw tick count and are not wraparound
// aware: two instants must be within 2^31 ticks of each other.
type Instant struct {
	inner uint32
}

// Ticks returns the raw counter value.
func (i Instant) Ticks() uint32 {
	return i.inner
}

// Elapsed returns the time since i, read from c.
func (i Instant) Elapsed(c Clock) Duration {
	return c.Now().Sub(i)
}

// DurationSince returns the span from earlier to i.
// It panics with ErrInstantOrder unless earlier is strictly before i.
func (i Instant) DurationSince(earlier Instant) Duration {
	if i.inner <= earlier.inner {
		panic(ErrInstantOrder)
	}
	return Duration{inner: i.inner - earlier.inner}
}

// Sub is DurationSince.
func (i Instant) Sub(earlier Instant) Duration {
	return i.DurationSince(earlier)
}

// Add returns i+d, wrapping at 2^32. Deadlines near the wrap point stay
// representable.
func (i Instant) Add(d Duration) Instant {
	return Instant{inner: i.inner + d.inner}
}

// SubDuration returns i-d, wrapping at 2^32.
func (i Instant) SubDuration(d Duration) Instant {
	return Instant{inner: i.inner - d.inner}
}

// AddAssign advances i by d in place.
func (i *Instant) AddAssign(d Duration) {
	i.inner += d.inner
}

// SubAssign moves i back by d in place.
func (i *Instant) SubAssign(d Duration) {
	i.inner -= d.inner
}

// Cmp returns -1, 0 or +1 as i is before, equal to, or after j.
func (i Instant) Cmp(j Instant) int {
	switch {
	case i.inner < j.inner:
		return -1
	case i.inner > j.inner:
		return 1
	}
	return 0
}

// Before reports whether i is earlier than j.
func (i Instant) Before(j Instant) bool { return i.inner < j.inner }

// After reports whether i is later than j.
func (i Instant) After(j Instant) bool { return i.inner > j.inner }

// Equal reports whether i and j are the same tick.
func (i Instant) Equal(j Instant) bool { return i.inner == j.inner }

func (i Instant) String() string {
	return "Instant(" + utoa(i.inner) + ")"
}
