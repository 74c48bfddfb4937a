package usage

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestTryConsumeCapsAtLimit(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		got, err := ledger.TryConsume(ctx, "u1", "2024-01-01", 5)
		if err != nil {
			t.Fatalf("TryConsume call %d: %v", i+1, err)
		}
		if !got.Allowed {
			t.Fatalf("call %d: expected allowed", i+1)
		}
		if want := 5 - (i + 1); got.Remaining != want {
			t.Fatalf("call %d: expected remaining %d, got %d", i+1, want, got.Remaining)
		}
	}

	got, err := ledger.TryConsume(ctx, "u1", "2024-01-01", 5)
	if err != nil {
		t.Fatalf("TryConsume over limit: %v", err)
	}
	if got.Allowed {
		t.Fatalf("expected sixth call to be denied")
	}
	if got.Remaining != 0 {
		t.Fatalf("expected remaining 0 when denied, got %d", got.Remaining)
	}

	used, err := ledger.UsedOn(ctx, "u1", "2024-01-01")
	if err != nil {
		t.Fatalf("UsedOn: %v", err)
	}
	if used != 5 {
		t.Fatalf("expected counter to stay at 5 after denial, got %d", used)
	}
}

func TestTryConsumeConcurrentRequestsNeverExceedLimit(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	const workers = 100
	const limit = 5

	var wg sync.WaitGroup
	allowed := make(chan Consumption, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := ledger.TryConsume(ctx, "u1", "2024-01-01", limit)
			if err != nil {
				t.Errorf("TryConsume: %v", err)
				return
			}
			if got.Allowed {
				allowed <- got
			}
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	seen := make(map[int]bool)
	for c := range allowed {
		count++
		if c.Remaining < 0 {
			t.Fatalf("remaining went negative: %d", c.Remaining)
		}
		if seen[c.Remaining] {
			t.Fatalf("remaining value %d handed out twice", c.Remaining)
		}
		seen[c.Remaining] = true
	}
	if count != limit {
		t.Fatalf("expected exactly %d allowed consumes, got %d", limit, count)
	}
}

func TestDayRolloverStartsFreshBudget(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	beforeMidnight := time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC)
	afterMidnight := time.Date(2024, 1, 2, 0, 0, 1, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if got, _ := ledger.TryConsume(ctx, "u1", Day(beforeMidnight), 5); !got.Allowed {
			t.Fatalf("day one call %d unexpectedly denied", i+1)
		}
	}
	if got, _ := ledger.TryConsume(ctx, "u1", Day(beforeMidnight), 5); got.Allowed {
		t.Fatalf("expected day one budget to be exhausted")
	}

	got, err := ledger.TryConsume(ctx, "u1", Day(afterMidnight), 5)
	if err != nil {
		t.Fatalf("TryConsume on new day: %v", err)
	}
	if !got.Allowed {
		t.Fatalf("expected fresh budget after UTC midnight")
	}
	if got.Remaining != 4 {
		t.Fatalf("expected remaining 4 on new day, got %d", got.Remaining)
	}

	used, _ := ledger.UsedOn(ctx, "u1", Day(beforeMidnight))
	if used != 5 {
		t.Fatalf("expected old day counter untouched at 5, got %d", used)
	}
}

func TestTryConsumeIsolatesUsers(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ledger.TryConsume(ctx, "u1", "2024-01-01", 5)
	}
	got, err := ledger.TryConsume(ctx, "u2", "2024-01-01", 5)
	if err != nil {
		t.Fatalf("TryConsume other user: %v", err)
	}
	if !got.Allowed {
		t.Fatalf("expected other user's budget to be independent")
	}
}

func TestTryConsumeNonPositiveLimitDenies(t *testing.T) {
	ledger := NewMemoryLedger()
	got, err := ledger.TryConsume(context.Background(), "u1", "2024-01-01", 0)
	if err != nil {
		t.Fatalf("TryConsume: %v", err)
	}
	if got.Allowed {
		t.Fatalf("expected zero limit to deny")
	}
	used, _ := ledger.UsedOn(context.Background(), "u1", "2024-01-01")
	if used != 0 {
		t.Fatalf("expected no counter row, got %d", used)
	}
}

func TestResetClearsSingleDay(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	ledger.TryConsume(ctx, "u1", "2024-01-01", 5)
	ledger.TryConsume(ctx, "u1", "2024-01-02", 5)

	if err := ledger.Reset(ctx, "u1", "2024-01-01"); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	used, _ := ledger.UsedOn(ctx, "u1", "2024-01-01")
	if used != 0 {
		t.Fatalf("expected reset day to be cleared, got %d", used)
	}
	used, _ = ledger.UsedOn(ctx, "u1", "2024-01-02")
	if used != 1 {
		t.Fatalf("expected other day untouched, got %d", used)
	}
}
