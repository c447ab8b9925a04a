package report

import "github.com/hamed0406/pingreport/internal/domain"

// Sink serializes a cycle outcome to a durable artifact and returns its path.
type Sink interface {
	Write(outcome domain.CycleOutcome) (path string, err error)
}
