package batch

import (
	"context"
	"errors"
	"time"

	"github.com/fundlens/fundlens"
	"github.com/fundlens/fundlens/store"
	"github.com/sirupsen/logrus"
)

// navQuoter fetches the freshest NAV for a scheme.
type navQuoter interface {
	LatestNav(ctx context.Context, code int) (fundlens.NavPoint, error)
}

// sipStore is the slice of the store the debit run touches.
type sipStore interface {
	DueSIPs(ctx context.Context, today time.Time) ([]*store.SIP, error)
	Portfolio(ctx context.Context, id string) (*fundlens.Portfolio, error)
	SavePortfolio(ctx context.Context, p *fundlens.Portfolio) error
	RecordDebit(ctx context.Context, sipID string, units, amount float64, debited time.Time) error
}

// SIPProcessor collects due installments against portfolio balances.
type SIPProcessor struct {
	store sipStore
	funds navQuoter
	log   *logrus.Logger
}

func NewSIPProcessor(st sipStore, funds navQuoter, log *logrus.Logger) *SIPProcessor {
	return &SIPProcessor{store: st, funds: funds, log: log}
}

// Run debits every active SIP whose date has arrived. A failed debit
// is recorded on the portfolio as a FAILED transaction and the run
// moves on; the plan stays due and is retried next run.
func (p *SIPProcessor) Run(ctx context.Context) error {
	due, err := p.store.DueSIPs(ctx, time.Now())
	if err != nil {
		return err
	}
	p.log.WithField("due", len(due)).Info("processing SIP debits")

	for _, sip := range due {
		if err := p.debit(ctx, sip); err != nil {
			p.log.WithFields(map[string]interface{}{
				"sip":    sip.ID,
				"scheme": sip.SchemeCode,
			}).WithError(err).Warn("SIP debit failed")
		}
	}
	return nil
}

func (p *SIPProcessor) debit(ctx context.Context, sip *store.SIP) error {
	now := time.Now()
	portfolio, err := p.store.Portfolio(ctx, sip.PortfolioID)
	if err != nil {
		return err
	}

	point, err := p.funds.LatestNav(ctx, sip.SchemeCode)
	if err != nil {
		return p.recordFailure(ctx, portfolio, sip, now, "no NAV available")
	}

	units, err := portfolio.Buy(sip.SchemeCode, sip.SchemeName, fundlens.M(sip.Amount), point.Nav, now)
	if err != nil {
		return p.recordFailure(ctx, portfolio, sip, now, err.Error())
	}
	// The purchase came from a plan, not a manual trade.
	portfolio.Transactions[len(portfolio.Transactions)-1].Type = fundlens.TxSIP

	if err := p.store.SavePortfolio(ctx, portfolio); err != nil {
		return err
	}
	if err := p.store.RecordDebit(ctx, sip.ID, units.AsFloat(), sip.Amount, now); err != nil {
		return err
	}
	p.log.WithFields(map[string]interface{}{
		"sip":    sip.ID,
		"scheme": sip.SchemeCode,
		"amount": sip.Amount,
		"units":  units.AsFloat(),
	}).Info("SIP debited")
	return nil
}

// recordFailure appends a FAILED transaction so the investor sees the
// missed installment in their history, then reports the reason to the
// caller.
func (p *SIPProcessor) recordFailure(ctx context.Context, portfolio *fundlens.Portfolio, sip *store.SIP, now time.Time, reason string) error {
	portfolio.Transactions = append(portfolio.Transactions, fundlens.Transaction{
		Type:       fundlens.TxSIP,
		SchemeCode: sip.SchemeCode,
		SchemeName: sip.SchemeName,
		Amount:     fundlens.M(sip.Amount),
		Date:       now,
		Status:     fundlens.TxFailed,
		Note:       reason,
	})
	if err := p.store.SavePortfolio(ctx, portfolio); err != nil {
		return err
	}
	return errors.New(reason)
}
