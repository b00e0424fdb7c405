package core

// Timer is a deadline in the scheduler's queue
type Timer struct {
	WakeTime Instant
	Handler  func(*Timer) uint8
	ID       uint8 // Reported in timing events

	next   *Timer
	queued bool
}

// Handler results
const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

// Scheduler runs timers against a MonotonicClock. The clock is reset once
// in Boot, before the scheduler exists, so no task can observe it mid-reset.
type Scheduler struct {
	clock  MonotonicClock
	timers *Timer
}

// Boot runs init with the clock still armed, then resets the counters and
// returns a scheduler ready to admit timers. init may be nil.
func Boot(armed *ArmedClock, init func()) *Scheduler {
	if init != nil {
		init()
	}
	return &Scheduler{clock: armed.Reset()}
}

// Clock returns the running clock the scheduler reads.
func (s *Scheduler) Clock() MonotonicClock {
	return s.clock
}

// Schedule adds t in WakeTime order. Timers with equal WakeTime run in the
// order they were added. Scheduling a timer that is already queued does
// nothing; Cancel it first to move it.
func (s *Scheduler) Schedule(t *Timer) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if t.queued {
		return
	}
	s.insertTimer(t)
	RecordTiming(EvtTimerSchedule, t.ID, s.clock.Now().inner, t.WakeTime.inner, 0)
}

// Cancel removes t if it is queued and reports whether it was.
func (s *Scheduler) Cancel(t *Timer) bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	for link := &s.timers; *link != nil; link = &(*link).next {
		if *link == t {
			*link = t.next
			t.next = nil
			t.queued = false
			return true
		}
	}
	return false
}

// insertTimer inserts a timer in sorted order by WakeTime
func (s *Scheduler) insertTimer(t *Timer) {
	t.queued = true
	if s.timers == nil || t.WakeTime.Before(s.timers.WakeTime) {
		t.next = s.timers
		s.timers = t
		return
	}

	current := s.timers
	for current.next != nil && !t.WakeTime.Before(current.next.WakeTime) {
		current = current.next
	}

	t.next = current.next
	current.next = t
}

// popDue unlinks the head timer if it is due at now.
func (s *Scheduler) popDue(now Instant) *Timer {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	t := s.timers
	if t == nil || t.WakeTime.After(now) {
		return nil
	}
	s.timers = t.next
	t.next = nil
	t.queued = false
	return t
}

// Dispatch runs every timer due at the current instant and returns how many
// ran. Handlers run with interrupts enabled and may call Schedule.
func (s *Scheduler) Dispatch() int {
	now := s.clock.Now()
	fired := 0
	for {
		t := s.popDue(now)
		if t == nil {
			return fired
		}
		if now.After(t.WakeTime) {
			RecordTiming(EvtTimerPast, t.ID, now.inner, t.WakeTime.inner, now.Sub(t.WakeTime).inner)
		} else {
			RecordTiming(EvtTimerFire, t.ID, now.inner, t.WakeTime.inner, 0)
		}
		fired++

		if t.Handler(t) == SF_RESCHEDULE {
			state := disableInterrupts()
			s.insertTimer(t)
			restoreInterrupts(state)
		}
	}
}

// Next returns the earliest queued deadline.
func (s *Scheduler) Next() (Instant, bool) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if s.timers == nil {
		return Instant{}, false
	}
	return s.timers.WakeTime, true
}

// UntilNext returns the time left before the earliest deadline, zero if it
// is already due. The result is what gets loaded into a compare register.
func (s *Scheduler) UntilNext() (Duration, bool) {
	wake, ok := s.Next()
	if !ok {
		return Duration{}, false
	}
	now := s.clock.Now()
	if !wake.After(now) {
		return Duration{}, true
	}
	return wake.Sub(now), true
}

// Periodic returns a timer that first fires at start and then every period
// after the previous deadline. fn receives the deadline being served, so
// drift in dispatch does not accumulate.
//
// Deadlines wrap at 2^32 but ordering does not. Once the next deadline wraps
// (about 268s at 16MHz) it compares as due against the still-large clock, so
// Dispatch fires it back to back, roughly 2^32/period times, until the
// deadline passes the clock again; then nothing fires until the clock itself
// wraps and catches up, another ~268s. A periodic timer is only good for
// sessions shorter than one counter wrap.
func Periodic(id uint8, start Instant, period Duration, fn func(scheduled Instant)) *Timer {
	return &Timer{
		ID:       id,
		WakeTime: start,
		Handler: func(t *Timer) uint8 {
			fn(t.WakeTime)
			t.WakeTime = t.WakeTime.Add(period)
			return SF_RESCHEDULE
		},
	}
}
