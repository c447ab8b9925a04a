package domain

import "time"

// Target is a named host to probe. Identity is the Address; names are labels
// for the report and may repeat.
type Target struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
}

// Attempt is the outcome of a single reachability check. Latency is only
// meaningful when OK is true.
type Attempt struct {
	OK      bool          `json:"ok"`
	Latency time.Duration `json:"latency,omitempty"`
}
