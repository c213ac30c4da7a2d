package category

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Warmer periodically refreshes the category cache so reads rarely miss.
type Warmer struct {
	svc      *Service
	interval time.Duration
	logger   zerolog.Logger
}

func NewWarmer(svc *Service, interval time.Duration, logger zerolog.Logger) *Warmer {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Warmer{
		svc:      svc,
		interval: interval,
		logger:   logger.With().Str("component", "category_warmer").Logger(),
	}
}

// Run blocks until context cancellation.
func (w *Warmer) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// run immediately
	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Warmer) tick(ctx context.Context) {
	n, err := w.svc.Refresh(ctx)
	if err != nil {
		w.logger.Warn().Err(err).Msg("category refresh failed")
		return
	}
	w.logger.Debug().Int("categories", n).Msg("category cache refreshed")
}
