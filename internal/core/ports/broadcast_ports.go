package ports

import (
	"context"

	"ovozbot/internal/core/domain"
)

// BroadcastReporter receives the final accounting of a finished run. It is
// called from the broadcast goroutine after the run's bookkeeping is closed.
type BroadcastReporter func(ctx context.Context, initiatorID int64, report domain.BroadcastReport)

// BroadcastService fans one message out to the whole user directory as a
// background run. Start snapshots the directory and returns the recipient
// count immediately; domain.ErrBroadcastBusy is returned while another run
// is in flight. A zero recipient count means no run was started.
type BroadcastService interface {
	Start(ctx context.Context, payload MessageRef, initiatorID int64) (int, error)
	Running() bool
	Stop()
}
