package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Append two values in reverse order and check the history stays sorted.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[0] != d2 || h.days[1] != d1 {
		t.Errorf("history days = %v want [%v %v]", h.days, d2, d1)
	}
	if h.values[0] != v2 || h.values[1] != v1 {
		t.Errorf("history values = %v want [%v %v]", h.values, v2, v1)
	}
}

func TestAppendOverwrites(t *testing.T) {
	h := new(History[float64])
	d := New(2025, 1, 15)
	h.Append(d, 10).Append(d, 20)
	if h.Len() != 1 {
		t.Fatalf("Len() = %d want 1", h.Len())
	}
	if v, _ := h.Get(d); v != 20 {
		t.Errorf("Get(d) = %v want 20 (last append wins)", v)
	}
}

func TestFirstLatest(t *testing.T) {
	h := new(History[float64])

	// Empty history reports no endpoints at all.
	if _, _, ok := h.First(); ok {
		t.Error("First() on empty history: ok = true want false")
	}
	if _, _, ok := h.Latest(); ok {
		t.Error("Latest() on empty history: ok = true want false")
	}

	h.Append(MustParse("2025-01-20"), 2)
	h.Append(MustParse("2025-01-10"), 1)
	h.Append(MustParse("2025-01-30"), 3)

	day, val, ok := h.First()
	if !ok || day != MustParse("2025-01-10") || val != 1 {
		t.Errorf("First() = (%v, %v, %v) want (2025-01-10, 1, true)", day, val, ok)
	}
	day, val, ok = h.Latest()
	if !ok || day != MustParse("2025-01-30") || val != 3 {
		t.Errorf("Latest() = (%v, %v, %v) want (2025-01-30, 3, true)", day, val, ok)
	}

	// A single-point history has the same first and latest point.
	single := new(History[float64])
	single.Append(MustParse("2025-06-01"), 42)
	fd, fv, fok := single.First()
	ld, lv, lok := single.Latest()
	if !fok || !lok || fd != ld || fv != lv {
		t.Errorf("single point: First() = (%v, %v, %v), Latest() = (%v, %v, %v), want identical ok points",
			fd, fv, fok, ld, lv, lok)
	}
}

func TestAsOfFrom(t *testing.T) {
	h := new(History[float64])
	h.Append(MustParse("2025-01-10"), 1)
	h.Append(MustParse("2025-01-20"), 2)
	h.Append(MustParse("2025-01-30"), 3)

	testCases := []struct {
		name    string
		day     string
		wantDay string
		wantVal float64
		wantOK  bool
		forward bool
	}{
		{name: "exact match", day: "2025-01-20", wantDay: "2025-01-20", wantVal: 2, wantOK: true},
		{name: "between points", day: "2025-01-25", wantDay: "2025-01-20", wantVal: 2, wantOK: true},
		{name: "after last", day: "2025-02-05", wantDay: "2025-01-30", wantVal: 3, wantOK: true},
		{name: "before first", day: "2025-01-05", wantOK: false},
		{name: "forward exact", day: "2025-01-10", wantDay: "2025-01-10", wantVal: 1, wantOK: true, forward: true},
		{name: "forward between", day: "2025-01-15", wantDay: "2025-01-20", wantVal: 2, wantOK: true, forward: true},
		{name: "forward past end", day: "2025-02-05", wantOK: false, forward: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var on Date
			var val float64
			var ok bool
			if tc.forward {
				on, val, ok = h.From(MustParse(tc.day))
			} else {
				on, val, ok = h.AsOf(MustParse(tc.day))
			}
			if ok != tc.wantOK {
				t.Fatalf("ok = %v want %v", ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if on != MustParse(tc.wantDay) || val != tc.wantVal {
				t.Errorf("got (%v, %v) want (%v, %v)", on, val, tc.wantDay, tc.wantVal)
			}
		})
	}
}
