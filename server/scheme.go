package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/fundlens/fundlens"
	"github.com/fundlens/fundlens/date"
	"github.com/gorilla/mux"
)

func schemeCode(r *http.Request) int {
	// The route pattern guarantees digits.
	code, _ := strconv.Atoi(mux.Vars(r)["code"])
	return code
}

func (s *Server) handleSchemeList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if q := r.URL.Query().Get("q"); q != "" {
		schemes, err := s.store.SearchSchemes(ctx, q, 50)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respond(w, http.StatusOK, schemes)
		return
	}
	schemes, err := s.store.ActiveSchemes(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, schemes)
}

func (s *Server) handleSchemeDetails(w http.ResponseWriter, r *http.Request) {
	meta, raw, err := s.funds.Scheme(r.Context(), schemeCode(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	series := fundlens.BuildNavSeries(raw)
	latest, _ := series.Latest()
	s.respond(w, http.StatusOK, map[string]interface{}{
		"meta":      meta,
		"latestNav": latest.Nav,
		"navDate":   latest.Date,
		"navCount":  series.Len(),
	})
}

// runCalc is the shared shape of every calculator endpoint: decode the
// request, fetch the scheme's history once, run the engine.
func runCalc[Req any, Res any](s *Server, w http.ResponseWriter, r *http.Request,
	calc func(fundlens.NavSeries, Req) (Res, error)) {
	var req Req
	if !s.decode(w, r, &req) {
		return
	}
	series, err := s.funds.NavSeries(r.Context(), schemeCode(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	res, err := calc(series, req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, res)
}

func (s *Server) handleLumpSum(w http.ResponseWriter, r *http.Request) {
	runCalc(s, w, r, fundlens.LumpSum)
}

func (s *Server) handleSIPCalc(w http.ResponseWriter, r *http.Request) {
	runCalc(s, w, r, fundlens.SIP)
}

func (s *Server) handleStepUpSIP(w http.ResponseWriter, r *http.Request) {
	runCalc(s, w, r, fundlens.StepUpSIP)
}

func (s *Server) handleSWP(w http.ResponseWriter, r *http.Request) {
	runCalc(s, w, r, fundlens.SWP)
}

func (s *Server) handleStepUpSWP(w http.ResponseWriter, r *http.Request) {
	runCalc(s, w, r, fundlens.StepUpSWP)
}

func (s *Server) handleRolling(w http.ResponseWriter, r *http.Request) {
	runCalc(s, w, r, fundlens.RollingReturns)
}

func (s *Server) handleReturns(w http.ResponseWriter, r *http.Request) {
	series, err := s.funds.NavSeries(r.Context(), schemeCode(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	q := r.URL.Query()
	var res *fundlens.ReturnsResult
	switch {
	case q.Get("period") != "":
		period, perr := fundlens.ParsePeriod(q.Get("period"))
		if perr != nil {
			s.respondError(w, r, perr)
			return
		}
		res, err = fundlens.ReturnsForPeriod(series, period)
	case q.Get("from") != "" && q.Get("to") != "":
		from, ferr := date.Parse(q.Get("from"))
		to, terr := date.Parse(q.Get("to"))
		if ferr != nil || terr != nil {
			s.respondError(w, r, fmt.Errorf("%w: dates must be yyyy-mm-dd", fundlens.ErrInvalidRequest))
			return
		}
		res, err = fundlens.ReturnsBetween(series, from, to)
	default:
		s.respondError(w, r, fmt.Errorf("%w: period or from/to required", fundlens.ErrInvalidRequest))
		return
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, res)
}
