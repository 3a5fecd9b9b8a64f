package highscore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps scores in process, for runs without Redis.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record
}

func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) SubmitScore(_ context.Context, userID string, score int) error {
	if userID == "" {
		return fmt.Errorf("%w: user ID cannot be empty", ErrInvalidArgument)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, Record{
		ID:        uuid.NewString(),
		UserID:    userID,
		Score:     score,
		CreatedAt: time.Now(),
	})
	return nil
}

func (m *MemoryStore) Top(_ context.Context, n int) ([]Record, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive", ErrInvalidArgument)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.records)
	slices.SortStableFunc(out, func(a, b Record) int { return cmp.Compare(b.Score, a.Score) })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}
