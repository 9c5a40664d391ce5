package state

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultSweepInterval is how often the sweeper runs the expiry pass.
const DefaultSweepInterval = time.Minute

// Sweeper periodically removes expired stories. The pass is idempotent,
// so an extra tick costs nothing beyond a snapshot write.
type Sweeper struct {
	stories  *Stories
	interval time.Duration
	logger   *zap.Logger
	cancel   context.CancelFunc
}

// NewSweeper creates a sweeper over the story store. A non-positive
// interval falls back to DefaultSweepInterval.
func NewSweeper(stories *Stories, interval time.Duration, logger *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{stories: stories, interval: interval, logger: logger}
}

// Start runs one immediate pass, then sweeps on the interval until Stop.
func (s *Sweeper) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.stories.CleanupExpired()
	go s.loop(ctx)
}

// Stop stops the sweep loop.
func (s *Sweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Sweeper) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.stories.CleanupExpired()
		case <-ctx.Done():
			return
		}
	}
}
