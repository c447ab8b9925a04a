package probe

import (
	"context"

	"github.com/hamed0406/pingreport/internal/domain"
)

// Prober runs a fixed number of reachability checks against one address and
// reports every attempt. The returned slice always has length attempts; a
// transport error on one attempt becomes a failed Attempt and never aborts
// the remaining ones.
type Prober interface {
	Probe(ctx context.Context, address string, attempts int) []domain.Attempt
}
