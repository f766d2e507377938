package server

import (
	"net/http"
	"strconv"

	"github.com/fundlens/fundlens/store"
	"github.com/gorilla/mux"
)

type createSIPRequest struct {
	PortfolioID string  `json:"portfolioId"`
	SchemeCode  int     `json:"schemeCode"`
	Amount      float64 `json:"amount"`
	DayOfMonth  int     `json:"dayOfMonth"`
}

func (s *Server) handleCreateSIP(w http.ResponseWriter, r *http.Request) {
	var req createSIPRequest
	if !s.decode(w, r, &req) {
		return
	}

	// The portfolio must exist, and the scheme name is stamped on the
	// plan so listings do not need a provider round-trip.
	if _, err := s.store.Portfolio(r.Context(), req.PortfolioID); err != nil {
		s.respondError(w, r, err)
		return
	}
	meta, _, err := s.funds.Scheme(r.Context(), req.SchemeCode)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	sip := &store.SIP{
		UserID:      defaultUserID,
		PortfolioID: req.PortfolioID,
		SchemeCode:  req.SchemeCode,
		SchemeName:  meta.SchemeName,
		Amount:      req.Amount,
		DayOfMonth:  req.DayOfMonth,
	}
	if err := s.store.CreateSIP(r.Context(), sip); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, sip)
}

func (s *Server) handleListSIPs(w http.ResponseWriter, r *http.Request) {
	portfolioID := r.URL.Query().Get("portfolioId")
	if portfolioID == "" {
		s.respond(w, http.StatusBadRequest, errorBody{Error: "portfolioId is required"})
		return
	}
	sips, err := s.store.SIPs(r.Context(), portfolioID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if sips == nil {
		sips = []*store.SIP{}
	}
	s.respond(w, http.StatusOK, sips)
}

func (s *Server) handleCancelSIP(w http.ResponseWriter, r *http.Request) {
	if err := s.store.CancelSIP(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"status": store.SIPCancelled})
}

type watchlistRequest struct {
	SchemeCode int `json:"schemeCode"`
}

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.Watchlist(r.Context(), defaultUserID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if entries == nil {
		entries = []store.WatchlistEntry{}
	}
	s.respond(w, http.StatusOK, entries)
}

func (s *Server) handleWatchlistAdd(w http.ResponseWriter, r *http.Request) {
	var req watchlistRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.store.AddToWatchlist(r.Context(), defaultUserID, req.SchemeCode); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, req)
}

func (s *Server) handleWatchlistRemove(w http.ResponseWriter, r *http.Request) {
	code, _ := strconv.Atoi(mux.Vars(r)["code"])
	if err := s.store.RemoveFromWatchlist(r.Context(), defaultUserID, code); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}
