package tasks

import (
	"context"
	"log"
	"time"

	"github.com/cride-hq/cride_backend/services"
)

// SweepInterval is how often finished rides are swept.
const SweepInterval = 30 * time.Second

// Sweeper periodically deactivates rides whose arrival time has passed.
// All the lifecycle logic lives in the ride service; this only owns the
// timer.
type Sweeper struct {
	rides    *services.RideService
	interval time.Duration
}

func NewSweeper(rides *services.RideService) *Sweeper {
	return &Sweeper{rides: rides, interval: SweepInterval}
}

// Run blocks and sweeps once per interval until ctx is cancelled. Start
// it on its own goroutine.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			count, err := s.rides.SweepExpired(ctx, now)
			if err != nil {
				log.Printf("Ride sweep failed: %v", err)
				continue
			}
			if count > 0 {
				log.Printf("Deactivated %d finished rides", count)
			}
		}
	}
}
