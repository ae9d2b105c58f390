// Package retention deletes notifications past their retention window.
// The store has no TTL index of its own, so a background sweep stands
// in for one: every notification expires three days after creation
// regardless of read state.
package retention

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/nestnic/taskflow/db"
	"github.com/nestnic/taskflow/internal/models"
)

const (
	// NotificationTTL is the retention window for notification rows.
	NotificationTTL = 72 * time.Hour

	defaultSweepInterval = time.Hour
)

type Sweeper struct {
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewSweeper(interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Sweeper{
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start sweeps once immediately, then on every tick until Stop.
func (s *Sweeper) Start() {
	log.Println("Starting notification retention sweeper...")

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		if err := SweepExpired(); err != nil {
			log.Printf("Notification sweep failed: %v", err)
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				if err := SweepExpired(); err != nil {
					log.Printf("Notification sweep failed: %v", err)
				}
			}
		}
	}()
}

// Stop cancels the sweep loop and waits for it to exit.
func (s *Sweeper) Stop() {
	s.cancel()
	s.wg.Wait()
	log.Println("Notification retention sweeper stopped")
}

// SweepExpired hard-deletes every notification older than the
// retention window, read or not.
func SweepExpired() error {
	cutoff := time.Now().Add(-NotificationTTL)

	result := db.DB.Unscoped().Where("created_at < ?", cutoff).Delete(&models.Notification{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("Expired %d notifications older than %s", result.RowsAffected, cutoff.Format(time.RFC3339))
	}

	return nil
}
