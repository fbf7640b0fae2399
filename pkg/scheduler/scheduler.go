package scheduler

import (
	"context"
	"time"

	"github.com/cbailey/wallet-ledger/pkg/models"
)

// Scheduler defines the interface for enqueueing a pending gateway transaction
// for a deferred status check.
type Scheduler interface {
	// ScheduleStatusCheck enqueues tx to be re-checked against its gateway
	// after the given delay.
	ScheduleStatusCheck(ctx context.Context, tx *models.Transaction, delay time.Duration) error
}
