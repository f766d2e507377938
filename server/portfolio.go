package server

import (
	"net/http"
	"time"

	"github.com/fundlens/fundlens"
	"github.com/gorilla/mux"
)

// DefaultStartingBalance is the virtual cash a new portfolio opens
// with when the request does not name one.
const DefaultStartingBalance = 100000

type createPortfolioRequest struct {
	Name            string  `json:"portfolioName"`
	StartingBalance float64 `json:"startingBalance"`
	Initial         *struct {
		SchemeCode int     `json:"schemeCode"`
		Amount     float64 `json:"amount"`
	} `json:"initialInvestment"`
}

func (s *Server) handleCreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req createPortfolioRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.StartingBalance == 0 {
		req.StartingBalance = DefaultStartingBalance
	}

	now := time.Now()
	p := fundlens.NewPortfolio(defaultUserID, req.Name, fundlens.M(req.StartingBalance), now)

	if req.Initial != nil {
		nav, name, err := s.latestQuote(r, req.Initial.SchemeCode)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		if _, err := p.Buy(req.Initial.SchemeCode, name, fundlens.M(req.Initial.Amount), nav, now); err != nil {
			s.respondError(w, r, err)
			return
		}
		// The opening purchase is part of funding, not trading.
		p.Transactions[len(p.Transactions)-1].Type = fundlens.TxInitialInvestment
	}

	if err := s.store.CreatePortfolio(r.Context(), p); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, p)
}

// latestQuote fetches the freshest NAV and scheme name for a trade.
func (s *Server) latestQuote(r *http.Request, code int) (nav float64, name string, err error) {
	meta, raw, err := s.funds.Scheme(r.Context(), code)
	if err != nil {
		return 0, "", err
	}
	series := fundlens.BuildNavSeries(raw)
	latest, ok := series.Latest()
	if !ok {
		return 0, "", fundlens.ErrNoValidNav
	}
	return latest.Nav, meta.SchemeName, nil
}

func (s *Server) handleListPortfolios(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.Portfolios(r.Context(), defaultUserID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if list == nil {
		list = []*fundlens.Portfolio{}
	}
	s.respond(w, http.StatusOK, list)
}

func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Portfolio(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, p)
}

func (s *Server) handleDeletePortfolio(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeletePortfolio(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}

type tradeRequest struct {
	SchemeCode int     `json:"schemeCode"`
	Amount     float64 `json:"amount"`
	Units      float64 `json:"units"`
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if !s.decode(w, r, &req) {
		return
	}
	p, err := s.store.Portfolio(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	nav, name, err := s.latestQuote(r, req.SchemeCode)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	units, err := p.Buy(req.SchemeCode, name, fundlens.M(req.Amount), nav, time.Now())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.store.SavePortfolio(r.Context(), p); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]interface{}{
		"units":   units,
		"nav":     nav,
		"balance": p.Balance,
	})
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if !s.decode(w, r, &req) {
		return
	}
	p, err := s.store.Portfolio(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	nav, _, err := s.latestQuote(r, req.SchemeCode)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	proceeds, err := p.Sell(req.SchemeCode, fundlens.Q(req.Units), nav, time.Now())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.store.SavePortfolio(r.Context(), p); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]interface{}{
		"proceeds": proceeds,
		"nav":      nav,
		"balance":  p.Balance,
	})
}

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Portfolio(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	codes := make([]int, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		codes = append(codes, h.SchemeCode)
	}
	quotes, err := s.store.SchemeNavs(r.Context(), codes)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, p.Valuation(quotes))
}
