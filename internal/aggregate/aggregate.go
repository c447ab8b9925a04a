// Package aggregate reduces raw probe attempts into per-host summaries and
// per-cycle outcomes. Everything here is pure; probing and I/O live elsewhere.
package aggregate

import (
	"time"

	"github.com/hamed0406/pingreport/internal/domain"
)

// Summarize reduces the attempts for one target into a HostSummary.
// Failed attempts are excluded from the average; a host with no successful
// attempt is Unreachable and carries no latency. The caller passes a single
// now so every host in a cycle reports the same timestamp.
func Summarize(target domain.Target, attempts []domain.Attempt, now time.Time) domain.HostSummary {
	var sum time.Duration
	var ok int
	for _, a := range attempts {
		if a.OK {
			sum += a.Latency
			ok++
		}
	}

	s := domain.HostSummary{Target: target, CheckedAt: now}
	if ok > 0 {
		avg := sum / time.Duration(ok)
		s.Reachable = true
		s.AvgLatency = &avg
	}
	return s
}

// Classify rolls per-host summaries up into a CycleOutcome. AllUnreachable
// is true only when there is at least one summary and none of them is
// reachable; an empty registry is a config problem, not an outage, and must
// not trigger the error notification path.
func Classify(summaries []domain.HostSummary, startedAt time.Time) domain.CycleOutcome {
	out := domain.CycleOutcome{Summaries: summaries, StartedAt: startedAt}
	if len(summaries) == 0 {
		return out
	}
	for _, s := range summaries {
		if s.Reachable {
			return out
		}
	}
	out.AllUnreachable = true
	return out
}
