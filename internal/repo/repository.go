package repo

import (
	"context"

	"github.com/hamed0406/pingreport/internal/domain"
)

// OutcomeStore keeps the most recent cycle outcome for the status API.
// Only the latest cycle is retained; historical storage is out of scope.
type OutcomeStore interface {
	SetLatest(ctx context.Context, outcome domain.CycleOutcome) error
	// Latest returns nil, nil before the first cycle completes.
	Latest(ctx context.Context) (*domain.CycleOutcome, error)
}
