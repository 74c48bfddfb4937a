package usage

import "context"

// Ledger is the per-user daily usage counter. TryConsume must be atomic across
// concurrent callers for the same user: two simultaneous requests must never
// both observe "allowed" when only one increment fits under the limit. No
// caller may emulate it with a separate read followed by a write.
type Ledger interface {
	// TryConsume increments the (userID, day) counter if it is below limit.
	// When allowed, Remaining is the budget left after this call. When denied,
	// the counter is untouched and Remaining is 0.
	TryConsume(ctx context.Context, userID, day string, limit int) (Consumption, error)

	// UsedOn reports the counter value for (userID, day); 0 when absent.
	UsedOn(ctx context.Context, userID, day string) (int, error)

	// Reset deletes the (userID, day) counter. Dev-only escape hatch.
	Reset(ctx context.Context, userID, day string) error
}
