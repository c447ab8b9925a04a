package memory

import (
	"context"
	"sync"

	"github.com/hamed0406/pingreport/internal/domain"
)

type Store struct {
	mu     sync.RWMutex
	latest *domain.CycleOutcome
}

func New() *Store {
	return &Store{}
}

func (m *Store) SetLatest(ctx context.Context, outcome domain.CycleOutcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := outcome
	m.latest = &cp
	return nil
}

func (m *Store) Latest(ctx context.Context) (*domain.CycleOutcome, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.latest == nil {
		return nil, nil
	}
	cp := *m.latest
	return &cp, nil
}
