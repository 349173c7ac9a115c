// Package expiry runs the background sweep that lapses stale slot offers.
package expiry

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kribhq/krib/internal/api/v1/services"
	"github.com/kribhq/krib/internal/logger"
)

// DefaultInterval is how often the sweep runs when no interval is configured.
const DefaultInterval = 15 * time.Minute

// Sweeper wraps robfig/cron and periodically expires offers whose TTL has
// lapsed, releasing their jobs back into the scheduling queue.
type Sweeper struct {
	cron   *cron.Cron
	offers *services.OfferService
	spec   string
}

// New creates a Sweeper that fires on the given interval.
func New(offers *services.OfferService, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sweeper{
		cron:   cron.New(),
		offers: offers,
		spec:   fmt.Sprintf("@every %s", interval),
	}
}

// Start registers the sweep and starts the scheduler. One sweep runs
// immediately so a restart doesn't leave lapsed offers sitting until the
// first tick.
func (s *Sweeper) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.sweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	logger.Infof("offer expiry sweeper started, interval %s", s.spec)

	go s.sweep(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Sweeper) Stop() {
	s.cron.Stop()
	logger.Info("offer expiry sweeper stopped")
}

func (s *Sweeper) sweep(ctx context.Context) {
	expired, err := s.offers.ExpireStaleOffers(ctx, time.Now())
	if err != nil {
		logger.Errorf("offer expiry sweep failed: %v", err)
		return
	}
	if expired > 0 {
		logger.Infof("offer expiry sweep lapsed %d offer batch(es)", expired)
	}
}
