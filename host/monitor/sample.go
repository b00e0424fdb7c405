package monitor

import (
	"errors"
	"strconv"
	"strings"

	"github.com/samber/oops"
)

// Report fields, as printed by core.ClockReport.
const (
	reportPrefix = "clock="
	nowPrefix    = "now="
)

// ErrNotSample marks a line that is not a clock report (debug output,
// blank lines). Callers skip these.
var ErrNotSample = errors.New("line is not a clock report")

// Sample is one clock report: the deadline the firmware served, the clock
// it read while serving it (when reported), and the input line.
type Sample struct {
	Ticks  uint32
	Now    uint32
	HasNow bool
	Line   int
}

// ParseLine parses a "clock=<ticks> [now=<ticks>]" report.
func ParseLine(text string, line int) (Sample, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], reportPrefix) {
		return Sample{}, ErrNotSample
	}
	if len(fields) > 2 {
		return Sample{}, oops.With("line", line).Errorf("malformed clock report %q: trailing fields", text)
	}

	ticks, err := strconv.ParseUint(fields[0][len(reportPrefix):], 10, 32)
	if err != nil {
		return Sample{}, oops.With("line", line).Wrapf(err, "malformed clock report %q", text)
	}
	s := Sample{Ticks: uint32(ticks), Line: line}

	if len(fields) == 2 {
		if !strings.HasPrefix(fields[1], nowPrefix) {
			return Sample{}, oops.With("line", line).Errorf("malformed clock report %q: expected %s", text, nowPrefix)
		}
		now, err := strconv.ParseUint(fields[1][len(nowPrefix):], 10, 32)
		if err != nil {
			return Sample{}, oops.With("line", line).Wrapf(err, "malformed clock report %q", text)
		}
		s.Now = uint32(now)
		s.HasNow = true
	}
	return s, nil
}
