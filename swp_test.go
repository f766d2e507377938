package fundlens

import (
	"errors"
	"testing"

	"github.com/fundlens/fundlens/date"
)

func TestSWP(t *testing.T) {
	s := flatSeries(t, "2020-01-01", "2020-12-31", 100)
	res, err := SWP(s, SWPRequest{
		InitialInvestment: 12000,
		WithdrawalAmount:  1000,
		Frequency:         Monthly,
		From:              date.MustParse("2020-01-01"),
		To:                date.MustParse("2020-06-01"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.TotalWithdrawals != 6 {
		t.Errorf("TotalWithdrawals = %d, want 6", res.TotalWithdrawals)
	}
	approx(t, "TotalWithdrawn", res.TotalWithdrawn, 6000, 0.01)
	// Flat NAV: the corpus falls by exactly the withdrawal each time.
	approx(t, "FinalCorpus", res.FinalCorpus, 6000, 0.01)
	approx(t, "AnnualizedReturn", res.AnnualizedReturn, 0, 0.01)
	if res.DurationMonths != 5 {
		t.Errorf("DurationMonths = %d, want 5", res.DurationMonths)
	}

	// Initial state plus one point per withdrawal.
	if len(res.Timeline) != 7 {
		t.Fatalf("len(Timeline) = %d, want 7", len(res.Timeline))
	}
	if res.Timeline[0].Withdrawal != 0 || res.Timeline[0].Corpus != 12000 {
		t.Errorf("initial point = %+v, want corpus 12000 and no withdrawal", res.Timeline[0])
	}
}

func TestSWPCapsWithdrawalAtCorpus(t *testing.T) {
	s := flatSeries(t, "2020-01-01", "2020-12-31", 100)
	res, err := SWP(s, SWPRequest{
		InitialInvestment: 10000,
		WithdrawalAmount:  20000,
		Frequency:         Monthly,
		From:              date.MustParse("2020-01-01"),
		To:                date.MustParse("2020-06-01"),
	})
	if err != nil {
		t.Fatal(err)
	}

	// The first withdrawal drains the whole corpus and the loop stops
	// with scheduled dates remaining.
	if res.TotalWithdrawals != 1 {
		t.Errorf("TotalWithdrawals = %d, want 1", res.TotalWithdrawals)
	}
	approx(t, "TotalWithdrawn", res.TotalWithdrawn, 10000, 0.01)
	if res.FinalCorpus != 0 {
		t.Errorf("FinalCorpus = %v, want 0", res.FinalCorpus)
	}
	if last := res.Timeline[len(res.Timeline)-1]; last.Withdrawal != 10000 {
		t.Errorf("last withdrawal = %v, want 10000 (capped)", last.Withdrawal)
	}
}

func TestSWPFailsOnUnresolvableWithdrawal(t *testing.T) {
	// The series starts after the first scheduled withdrawals; the
	// start NAV resolves forward but the early withdrawal dates have
	// no NAV at or before them.
	s := flatSeries(t, "2020-03-15", "2020-12-31", 100)
	_, err := SWP(s, SWPRequest{
		InitialInvestment: 10000,
		WithdrawalAmount:  500,
		Frequency:         Monthly,
		From:              date.MustParse("2020-01-01"),
		To:                date.MustParse("2020-06-01"),
	})
	if !errors.Is(err, ErrNoValidNav) {
		t.Errorf("err = %v, want ErrNoValidNav", err)
	}
}
