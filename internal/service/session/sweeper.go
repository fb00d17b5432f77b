package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// StartSweeper runs a background goroutine that periodically drops sessions
// idle for longer than maxAge. It stops when ctx is canceled.
func StartSweeper(ctx context.Context, store Store, maxAge, interval time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		log.Info().Dur("interval", interval).Dur("maxAge", maxAge).Msg("session sweeper started")

		for {
			select {
			case <-ticker.C:
				if removed := store.Sweep(maxAge); removed > 0 {
					log.Info().Int("removed", removed).Int("active", store.Count()).Msg("swept idle sessions")
				}
			case <-ctx.Done():
				log.Info().Msg("session sweeper shutting down")
				return
			}
		}
	}()
}
