// Package server exposes the return engine and the virtual portfolio
// over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fundlens/fundlens"
	"github.com/fundlens/fundlens/mfapi"
	"github.com/fundlens/fundlens/store"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// defaultUserID scopes portfolios and watchlists until real
// authentication exists.
const defaultUserID = "dummyUser"

// NavProvider supplies scheme metadata and NAV histories. *mfapi.Client
// implements it; tests substitute a canned one.
type NavProvider interface {
	Scheme(ctx context.Context, code int) (mfapi.SchemeMeta, []fundlens.RawNav, error)
	NavSeries(ctx context.Context, code int) (fundlens.NavSeries, error)
	LatestNav(ctx context.Context, code int) (fundlens.NavPoint, error)
}

// Server routes API requests to the engine and the store.
type Server struct {
	store  *store.Store
	funds  NavProvider
	log    *logrus.Logger
	router *mux.Router
}

// New assembles the router. All state lives in the store and the
// provider; the server itself is stateless.
func New(st *store.Store, funds NavProvider, log *logrus.Logger) *Server {
	s := &Server{store: st, funds: funds, log: log, router: mux.NewRouter()}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(s.logRequests)

	r.HandleFunc("/api/mf", s.handleSchemeList).Methods(http.MethodGet)
	r.HandleFunc("/api/scheme/{code:[0-9]+}", s.handleSchemeDetails).Methods(http.MethodGet)
	r.HandleFunc("/api/scheme/{code:[0-9]+}/returns", s.handleReturns).Methods(http.MethodGet)
	r.HandleFunc("/api/scheme/{code:[0-9]+}/rolling", s.handleRolling).Methods(http.MethodPost)
	r.HandleFunc("/api/scheme/{code:[0-9]+}/lumpsum", s.handleLumpSum).Methods(http.MethodPost)
	r.HandleFunc("/api/scheme/{code:[0-9]+}/sip", s.handleSIPCalc).Methods(http.MethodPost)
	r.HandleFunc("/api/scheme/{code:[0-9]+}/step-up-sip", s.handleStepUpSIP).Methods(http.MethodPost)
	r.HandleFunc("/api/scheme/{code:[0-9]+}/swp", s.handleSWP).Methods(http.MethodPost)
	r.HandleFunc("/api/scheme/{code:[0-9]+}/step-up-swp", s.handleStepUpSWP).Methods(http.MethodPost)

	r.HandleFunc("/api/virtual-portfolio", s.handleCreatePortfolio).Methods(http.MethodPost)
	r.HandleFunc("/api/virtual-portfolio", s.handleListPortfolios).Methods(http.MethodGet)
	r.HandleFunc("/api/virtual-portfolio/{id}", s.handleGetPortfolio).Methods(http.MethodGet)
	r.HandleFunc("/api/virtual-portfolio/{id}", s.handleDeletePortfolio).Methods(http.MethodDelete)
	r.HandleFunc("/api/virtual-portfolio/{id}/buy", s.handleBuy).Methods(http.MethodPost)
	r.HandleFunc("/api/virtual-portfolio/{id}/sell", s.handleSell).Methods(http.MethodPost)
	r.HandleFunc("/api/virtual-portfolio/{id}/performance", s.handlePerformance).Methods(http.MethodGet)

	r.HandleFunc("/api/sip", s.handleCreateSIP).Methods(http.MethodPost)
	r.HandleFunc("/api/sip", s.handleListSIPs).Methods(http.MethodGet)
	r.HandleFunc("/api/sip/{id}/cancel", s.handleCancelSIP).Methods(http.MethodPost)

	r.HandleFunc("/api/watchlist", s.handleWatchlist).Methods(http.MethodGet)
	r.HandleFunc("/api/watchlist", s.handleWatchlistAdd).Methods(http.MethodPost)
	r.HandleFunc("/api/watchlist/{code:[0-9]+}", s.handleWatchlistRemove).Methods(http.MethodDelete)
}

// ServeHTTP lets the Server be mounted directly in tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, listen string) error {
	srv := &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithField("listen", listen).Info("http server starting")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info("http server draining")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
