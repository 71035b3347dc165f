/*
warmer.go - Background availability cache warmer

PURPOSE:
  Periodically precomputes availability for every resource over the next
  few days and writes the results into the cache, so the first client
  query of the day hits warm data instead of paying for schedule
  expansion.

DESIGN:
  - Runs a background goroutine with configurable refresh interval
  - Computes one whole-day window per resource per day ahead
  - Uses the same cache keys as the GET availability endpoint, so any
    client asking for a full day at the default duration is served from
    cache
  - A disabled cache turns every refresh into a no-op

USAGE:
  warmer := api.NewCacheWarmer(handler)
  warmer.Start()
  // ... later
  warmer.Stop()

SEE ALSO:
  - handlers.go: ResourceAvailability (the endpoint being warmed)
  - cache/cache.go: the cache written to
*/
package api

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// CacheWarmer precomputes upcoming availability into the cache.
type CacheWarmer struct {
	Handler         *Handler
	RefreshInterval time.Duration
	DaysAhead       int
	DurationMinutes int
	Log             zerolog.Logger

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewCacheWarmer creates a warmer with hourly refresh over the next week.
func NewCacheWarmer(h *Handler, log zerolog.Logger) *CacheWarmer {
	return &CacheWarmer{
		Handler:         h,
		RefreshInterval: time.Hour,
		DaysAhead:       7,
		DurationMinutes: 60,
		Log:             log,
		stop:            make(chan struct{}),
	}
}

// Start begins the warmer. Does nothing when the cache is disabled.
func (cw *CacheWarmer) Start() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if !cw.Handler.Cache.Enabled() {
		cw.Log.Info().Msg("cache warmer disabled: no cache configured")
		return
	}

	cw.ticker = time.NewTicker(cw.RefreshInterval)
	cw.wg.Add(1)

	go cw.run()

	cw.Log.Info().Dur("interval", cw.RefreshInterval).Msg("cache warmer started")
}

// Stop stops the warmer.
func (cw *CacheWarmer) Stop() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.ticker != nil {
		cw.ticker.Stop()
		close(cw.stop)
		cw.wg.Wait()
		cw.Log.Info().Msg("cache warmer stopped")
	}
}

func (cw *CacheWarmer) run() {
	defer cw.wg.Done()

	// Run immediately on start
	cw.RefreshNow()

	for {
		select {
		case <-cw.ticker.C:
			cw.RefreshNow()
		case <-cw.stop:
			return
		}
	}
}

// RefreshNow warms the cache once for every resource.
func (cw *CacheWarmer) RefreshNow() {
	ctx := context.Background()

	resources, err := cw.Handler.Store.ListResources(ctx)
	if err != nil {
		cw.Log.Error().Err(err).Msg("cache warmer: listing resources failed")
		return
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	warmed := 0

	for _, res := range resources {
		for d := 0; d < cw.DaysAhead; d++ {
			start := today.AddDate(0, 0, d)
			end := start.AddDate(0, 0, 1)

			slots, err := cw.Handler.computeResourceAvailability(ctx, res.ID, start, end, cw.DurationMinutes, 0)
			if err != nil {
				cw.Log.Warn().Err(err).Str("resource", res.ID).Msg("cache warmer: computation failed")
				continue
			}

			key := availabilityCacheKey(res.ID, start, end, cw.DurationMinutes, 0)
			cw.Handler.Cache.Set(ctx, key, toQueryResponse(slots))
			warmed++
		}
	}

	if warmed > 0 {
		cw.Log.Debug().Int("windows", warmed).Msg("cache warmer: refresh complete")
	}
}
