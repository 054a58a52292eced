package daterange

import (
	"context"
	"time"
)

// SelectorService hosts one selector per session and name.
type SelectorService interface {
	State(ctx context.Context, name string) (*State, error)
	Select(ctx context.Context, name string, req SelectRequest) (*State, error)
	Clear(ctx context.Context, name string) (*State, error)
	SetBounds(ctx context.Context, name string, req BoundsRequest) (*State, error)

	// SweepIdle drops selectors untouched for longer than the idle TTL.
	SweepIdle(ctx context.Context, now time.Time) int
	// DropSession removes every selector owned by a session.
	DropSession(sessionID string) int
}
