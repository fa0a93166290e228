package redis

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/resellerdesk/creditledger/internal/domain"
	"github.com/resellerdesk/creditledger/internal/usecase"
)

// Locker implements usecase.Locker using redislock. Recalculation holds one
// of these locks per supplier so concurrent replays cannot interleave.
type Locker struct {
	client *redislock.Client
	prefix string
}

// NewLocker creates a new Locker.
func NewLocker(client *redis.Client) *Locker {
	return &Locker{
		client: redislock.New(client),
		prefix: "lock:",
	}
}

// Obtain acquires a lock for the given key. Returns
// domain.ErrRecalculationInProgress when another holder has it.
func (l *Locker) Obtain(ctx context.Context, key string, ttl time.Duration) (usecase.DistributedLock, error) {
	lock, err := l.client.Obtain(ctx, l.prefix+key, ttl, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, domain.ErrRecalculationInProgress
		}

		return nil, err
	}

	return &heldLock{lock: lock}, nil
}

type heldLock struct {
	lock *redislock.Lock
}

// Release releases the lock.
func (h *heldLock) Release(ctx context.Context) error {
	err := h.lock.Release(ctx)
	if err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
		return err
	}

	return nil
}
