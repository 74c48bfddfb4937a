package usage

import (
	"context"
	"sync"
)

// MemoryLedger is the in-memory Ledger used when no database is configured.
// A single mutex guards the whole map so test-and-increment stays atomic.
type MemoryLedger struct {
	mu     sync.Mutex
	counts map[ledgerKey]int
}

type ledgerKey struct {
	userID string
	day    string
}

// NewMemoryLedger constructs an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{counts: make(map[ledgerKey]int)}
}

func (l *MemoryLedger) TryConsume(ctx context.Context, userID, day string, limit int) (Consumption, error) {
	if err := ctx.Err(); err != nil {
		return Consumption{}, err
	}
	if limit <= 0 {
		return Consumption{Allowed: false, Remaining: 0}, nil
	}

	key := ledgerKey{userID: userID, day: day}
	l.mu.Lock()
	defer l.mu.Unlock()

	count := l.counts[key]
	if count >= limit {
		return Consumption{Allowed: false, Remaining: 0}, nil
	}
	count++
	l.counts[key] = count
	return Consumption{Allowed: true, Remaining: limit - count}, nil
}

func (l *MemoryLedger) UsedOn(ctx context.Context, userID, day string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[ledgerKey{userID: userID, day: day}], nil
}

func (l *MemoryLedger) Reset(ctx context.Context, userID, day string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.counts, ledgerKey{userID: userID, day: day})
	return nil
}

var _ Ledger = (*MemoryLedger)(nil)
