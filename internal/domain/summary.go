package domain

import "time"

// HostSummary is the per-cycle aggregate for one target.
// AvgLatency is non-nil iff Reachable (pointer to allow nil, like a DB NULL).
type HostSummary struct {
	Target     Target         `json:"target"`
	Reachable  bool           `json:"reachable"`
	AvgLatency *time.Duration `json:"avg_latency,omitempty"`
	CheckedAt  time.Time      `json:"checked_at"`
}

// CycleOutcome is the result of one full pass over the registry.
// Summaries is always in registry order, one entry per target.
type CycleOutcome struct {
	Summaries      []HostSummary `json:"summaries"`
	AllUnreachable bool          `json:"all_unreachable"`
	StartedAt      time.Time     `json:"started_at"`
}
