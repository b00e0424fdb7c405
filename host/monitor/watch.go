package monitor

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

type scanned struct {
	text string
	err  error
}

// Watch feeds every clock report read from r into t until r ends, ctx is
// cancelled, or maxSamples reports have been seen (0 means no limit).
// Non-report lines are skipped; malformed reports are logged and skipped.
func Watch(ctx context.Context, r io.Reader, t *Tracker, maxSamples uint64) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan scanned)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- scanned{text: sc.Text()}:
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			select {
			case lines <- scanned{err: err}:
			case <-ctx.Done():
			}
		}
	}()

	lineNo := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			if l.err != nil {
				return oops.Wrapf(l.err, "failed reading clock reports")
			}
			lineNo++

			s, err := ParseLine(l.text, lineNo)
			if errors.Is(err, ErrNotSample) {
				continue
			}
			if err != nil {
				log.WithError(err).WithField("line", lineNo).Warn("Skipping malformed clock report")
				continue
			}

			prev := t.Stats().Last
			fields := logger.Fields{
				"at":    "monitor.Watch",
				"ticks": s.Ticks,
			}
			if s.HasNow {
				fields["now"] = s.Now
			}
			switch a := t.Observe(s); a {
			case AnomalyNone:
				log.WithFields(fields).Debug("Clock report")
			default:
				fields["line"] = lineNo
				fields["previous"] = prev
				fields["anomaly"] = a.String()
				log.WithFields(fields).Warn("Irregular clock report")
			}

			if maxSamples != 0 && t.Stats().Samples >= maxSamples {
				return nil
			}
		}
	}
}
