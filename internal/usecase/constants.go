package usecase

import (
	"time"

	"github.com/resellerdesk/creditledger/internal/domain"
)

const (
	// DefaultRecalcLockTTL bounds how long a supplier recalculation may hold
	// its distributed lock.
	DefaultRecalcLockTTL = 5 * time.Minute

	// SupplierCacheTTL is how long a cached supplier read stays valid. The
	// cache is invalidated on every ledger mutation regardless.
	SupplierCacheTTL = 5 * time.Minute

	// BackfillMarker tags synthesized transaction records. Replay treats
	// marked credit-side records by magnitude, live ones by sign.
	BackfillMarker = domain.BackfillMarker
)
