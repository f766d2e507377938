package fundlens

import (
	"errors"
	"testing"

	"github.com/fundlens/fundlens/date"
)

func TestSIP(t *testing.T) {
	s := sparseSeries(t, map[string]float64{
		"2020-01-01": 100,
		"2020-02-01": 110,
		"2020-03-01": 120,
	})
	res, err := SIP(s, SIPRequest{
		Amount:    1000,
		Frequency: Monthly,
		From:      date.MustParse("2020-01-01"),
		To:        date.MustParse("2020-03-01"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.NumberOfInvestments != 3 {
		t.Errorf("NumberOfInvestments = %d, want 3", res.NumberOfInvestments)
	}
	if res.TotalInvested != 3000 {
		t.Errorf("TotalInvested = %v, want 3000", res.TotalInvested)
	}
	// 10 + 9.0909 + 8.3333 units.
	approx(t, "TotalUnits", res.TotalUnits, 27.4242, 0.0001)
	// Valued at the latest NAV, 120.
	approx(t, "CurrentValue", res.CurrentValue, 3290.91, 0.01)
	approx(t, "AbsoluteReturn", res.AbsoluteReturn, 9.7, 0.01)
	approx(t, "AnnualizedReturn", res.AnnualizedReturn, 75.63, 0.05)

	if len(res.Timeline) != 3 {
		t.Fatalf("len(Timeline) = %d, want 3", len(res.Timeline))
	}
	if res.Timeline[1].Invested != 2000 {
		t.Errorf("Timeline[1].Invested = %v, want 2000", res.Timeline[1].Invested)
	}
}

func TestSIPOrderIndependence(t *testing.T) {
	newest := []RawNav{
		{Date: "01-03-2020", Nav: "120"},
		{Date: "01-02-2020", Nav: "110"},
		{Date: "01-01-2020", Nav: "100"},
	}
	oldest := []RawNav{newest[2], newest[1], newest[0]}

	req := SIPRequest{
		Amount:    500,
		Frequency: Monthly,
		From:      date.MustParse("2020-01-01"),
		To:        date.MustParse("2020-03-01"),
	}
	a, err := SIP(BuildNavSeries(newest), req)
	if err != nil {
		t.Fatal(err)
	}
	b, err := SIP(BuildNavSeries(oldest), req)
	if err != nil {
		t.Fatal(err)
	}
	if a.TotalUnits != b.TotalUnits || a.CurrentValue != b.CurrentValue {
		t.Errorf("results differ by input order: %+v vs %+v", a, b)
	}
}

func TestSIPFailsOnUnresolvableInstallment(t *testing.T) {
	// The first installment predates the whole series.
	s := flatSeries(t, "2020-01-15", "2020-06-30", 100)
	_, err := SIP(s, SIPRequest{
		Amount:    1000,
		Frequency: Monthly,
		From:      date.MustParse("2020-01-01"),
		To:        date.MustParse("2020-06-01"),
	})
	if !errors.Is(err, ErrNoValidNav) {
		t.Errorf("err = %v, want ErrNoValidNav", err)
	}
}

func TestSIPRejectsBadFrequency(t *testing.T) {
	s := flatSeries(t, "2020-01-01", "2020-06-30", 100)
	_, err := SIP(s, SIPRequest{
		Amount:    1000,
		Frequency: "weekly",
		From:      date.MustParse("2020-01-01"),
		To:        date.MustParse("2020-06-01"),
	})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("err = %v, want ErrInvalidRequest", err)
	}
}
