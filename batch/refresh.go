package batch

import (
	"context"
	"sync"
	"time"

	"github.com/fundlens/fundlens"
	"github.com/fundlens/fundlens/mfapi"
	"github.com/fundlens/fundlens/store"
	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"golang.org/x/sync/errgroup"
)

// schemeProvider is the slice of the mfapi client the refresh needs.
type schemeProvider interface {
	ActiveSchemes(ctx context.Context) ([]mfapi.SchemeRef, error)
	LatestNav(ctx context.Context, code int) (fundlens.NavPoint, error)
}

// schemeCache is the slice of the store the refresh writes to.
type schemeCache interface {
	ReplaceActiveSchemes(ctx context.Context, schemes []store.Scheme) error
}

// Refresher rebuilds the active-scheme cache from the provider.
type Refresher struct {
	funds   schemeProvider
	cache   schemeCache
	log     *logrus.Logger
	workers int
	limiter ratelimit.Limiter
}

// NewRefresher paces provider calls at rps requests per second across
// workers concurrent fetchers.
func NewRefresher(funds schemeProvider, cache schemeCache, log *logrus.Logger, workers, rps int) *Refresher {
	if workers < 1 {
		workers = 1
	}
	if rps < 1 {
		rps = 1
	}
	return &Refresher{
		funds:   funds,
		cache:   cache,
		log:     log,
		workers: workers,
		limiter: ratelimit.New(rps),
	}
}

// Run fetches the latest NAV for every active scheme and swaps the
// cache wholesale. Schemes whose NAV fetch fails are logged and left
// out of the new universe rather than failing the run.
func (r *Refresher) Run(ctx context.Context) error {
	refs, err := r.funds.ActiveSchemes(ctx)
	if err != nil {
		return err
	}
	r.log.WithField("schemes", len(refs)).Info("refreshing scheme cache")

	var mu sync.Mutex
	rows := make([]store.Scheme, 0, len(refs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, ref := range refs {
		g.Go(func() error {
			r.limiter.Take()
			point, err := r.funds.LatestNav(ctx, ref.SchemeCode)
			if err != nil {
				r.log.WithField("scheme", ref.SchemeCode).WithError(err).Warn("skipping scheme")
				return nil
			}
			mu.Lock()
			rows = append(rows, store.Scheme{
				Code:      ref.SchemeCode,
				Name:      ref.SchemeName,
				Nav:       point.Nav,
				UpdatedAt: time.Now(),
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := r.cache.ReplaceActiveSchemes(ctx, rows); err != nil {
		return err
	}
	r.log.WithField("cached", len(rows)).Info("scheme cache rebuilt")
	return nil
}
