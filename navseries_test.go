package fundlens

import (
	"testing"

	"github.com/fundlens/fundlens/date"
)

func TestBuildNavSeries(t *testing.T) {
	raw := []RawNav{
		{Date: "03-01-2020", Nav: "102.5"},
		{Date: "02-01-2020", Nav: "101.0"},
		{Date: "01-01-2020", Nav: "100.0"},
		{Date: "bogus", Nav: "99.0"},
		{Date: "04-01-2020", Nav: "not-a-number"},
		{Date: "05-01-2020", Nav: "0"},
		{Date: "02-01-2020", Nav: "111.0"}, // duplicate date, last wins
	}
	s := BuildNavSeries(raw)

	if got := s.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	first, _ := s.Earliest()
	if want := date.New(2020, 1, 1); first.Date != want {
		t.Errorf("Earliest() = %s, want %s", first.Date, want)
	}
	last, _ := s.Latest()
	if want := date.New(2020, 1, 3); last.Date != want {
		t.Errorf("Latest() = %s, want %s", last.Date, want)
	}
	if nav, _ := s.At(date.New(2020, 1, 2)); nav != 111.0 {
		t.Errorf("At(2020-01-02) = %v, want 111.0 (last entry wins)", nav)
	}
}

func TestResolve(t *testing.T) {
	s := sparseSeries(t, map[string]float64{
		"2020-01-01": 100,
		"2020-01-06": 105,
		"2020-01-10": 110,
	})

	tests := []struct {
		name     string
		resolve  func(date.Date) (NavPoint, bool)
		day      string
		wantDay  string
		wantNav  float64
		wantMiss bool
	}{
		{"backward exact", s.ResolveBackward, "2020-01-06", "2020-01-06", 105, false},
		{"backward gap", s.ResolveBackward, "2020-01-08", "2020-01-06", 105, false},
		{"backward before first", s.ResolveBackward, "2019-12-25", "", 0, true},
		{"forward exact", s.ResolveForward, "2020-01-10", "2020-01-10", 110, false},
		{"forward gap", s.ResolveForward, "2020-01-07", "2020-01-10", 110, false},
		{"forward after last", s.ResolveForward, "2020-01-11", "", 0, true},
		{"nearest prefers backward", s.ResolveNearest, "2020-01-09", "2020-01-06", 105, false},
		{"nearest falls forward", s.ResolveNearest, "2019-12-25", "2020-01-01", 100, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := tc.resolve(date.MustParse(tc.day))
			if ok == tc.wantMiss {
				t.Fatalf("ok = %v, want %v", ok, !tc.wantMiss)
			}
			if tc.wantMiss {
				return
			}
			if p.Date != date.MustParse(tc.wantDay) || p.Nav != tc.wantNav {
				t.Errorf("got %s/%v, want %s/%v", p.Date, p.Nav, tc.wantDay, tc.wantNav)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	s := sparseSeries(t, map[string]float64{
		"2020-01-05": 100,
		"2020-02-05": 110,
	})
	tests := []struct{ in, want string }{
		{"2019-12-01", "2020-01-05"},
		{"2020-01-20", "2020-01-20"},
		{"2020-03-01", "2020-02-05"},
	}
	for _, tc := range tests {
		if got := s.Clamp(date.MustParse(tc.in)); got != date.MustParse(tc.want) {
			t.Errorf("Clamp(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
