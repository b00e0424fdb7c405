package monitor

import (
	"io"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Summary is the end-of-session report.
type Summary struct {
	Stats        `yaml:",inline"`
	PeriodCycles uint32  `yaml:"period_cycles"`
	SpanCycles   uint64  `yaml:"span_cycles"`
	SpanSeconds  float64 `yaml:"span_seconds"`
	Healthy      bool    `yaml:"healthy"`
}

// Summarize builds a Summary from t. The span counts whole 2^32 wraps.
func Summarize(t *Tracker, timerFreq uint32) Summary {
	st := t.Stats()
	s := Summary{
		Stats:        st,
		PeriodCycles: t.period.Cycles(),
		Healthy:      st.Irregular == 0 && st.Regressions == 0 && st.TornReads == 0,
	}
	if st.Samples > 1 && st.Regressions == 0 {
		s.SpanCycles = st.Wraps<<32 + uint64(st.Last) - uint64(st.First)
	}
	if timerFreq != 0 {
		s.SpanSeconds = float64(s.SpanCycles) / float64(timerFreq)
	}
	return s
}

// Expected returns how many reports a gap-free session over the same span
// would have produced.
func (s Summary) Expected() uint64 {
	if s.PeriodCycles == 0 || s.Samples == 0 {
		return s.Samples
	}
	return s.SpanCycles/uint64(s.PeriodCycles) + 1
}

// WriteYAML writes s to w.
func (s Summary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return oops.Wrapf(err, "failed to encode summary")
	}
	return enc.Close()
}
