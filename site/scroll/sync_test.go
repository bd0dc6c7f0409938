package scroll

import (
	"math"
	"testing"
)

type recordScroller struct {
	targets []float64
}

func (r *recordScroller) ScrollTo(target float64) { r.targets = append(r.targets, target) }

func (r *recordScroller) last(t *testing.T) float64 {
	t.Helper()
	if len(r.targets) == 0 {
		t.Fatal("no scroll requested")
	}
	return r.targets[len(r.targets)-1]
}

func TestActiveIndexMatchesFloor(t *testing.T) {
	for _, n := range []int{1, 2, 5, 9} {
		for _, h := range []float64{1, 320, 800, 1080.5} {
			for s := 0.0; s < float64(n+2)*h; s += h / 7 {
				want := int(math.Floor(s / h))
				if want > n-1 {
					want = n - 1
				}
				if got := ActiveIndex(s, h, n); got != want {
					t.Fatalf("ActiveIndex(%v, %v, %d) = %d, want %d", s, h, n, got, want)
				}
			}
		}
	}
}

func TestActiveIndexDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		height float64
		count  int
	}{
		{"no sections", 1650, 800, 0},
		{"negative count", 1650, 800, -3},
		{"zero height", 1650, 0, 5},
		{"negative height", 1650, -10, 5},
		{"negative offset", -200, 800, 5},
		{"nan offset", math.NaN(), 800, 5},
	}
	for _, tt := range tests {
		if got := ActiveIndex(tt.offset, tt.height, tt.count); got != 0 {
			t.Errorf("%s: ActiveIndex = %d, want 0", tt.name, got)
		}
	}
}

func TestPastThresholdBoundary(t *testing.T) {
	tests := []struct {
		offset float64
		want   bool
	}{
		{0, false},
		{49.9, false},
		{50, false},
		{50.01, true},
		{51, true},
		{5000, true},
	}
	for _, tt := range tests {
		if got := PastThreshold(tt.offset); got != tt.want {
			t.Errorf("PastThreshold(%v) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestJumpToTargets(t *testing.T) {
	const n, h = 5, 800.0
	rec := &recordScroller{}
	s := New(n, h, rec)

	for i := 0; i < n; i++ {
		s.JumpTo(i)
		if got := rec.last(t); got != float64(i)*h {
			t.Fatalf("JumpTo(%d) target = %v, want %v", i, got, float64(i)*h)
		}
	}

	s.JumpTo(-4)
	if got := rec.last(t); got != 0 {
		t.Fatalf("JumpTo(-4) target = %v, want 0", got)
	}
	s.JumpTo(17)
	if got := rec.last(t); got != (n-1)*h {
		t.Fatalf("JumpTo(17) target = %v, want %v", got, (n-1)*h)
	}
}

func TestJumpToDoesNotChangeActiveIndex(t *testing.T) {
	rec := &recordScroller{}
	s := New(5, 800, rec)
	s.JumpTo(3)
	if got := s.State().ActiveIndex; got != 0 {
		t.Fatalf("ActiveIndex = %d before the scroll was observed, want 0", got)
	}
	s.Observe(rec.last(t))
	if got := s.State().ActiveIndex; got != 3 {
		t.Fatalf("ActiveIndex = %d after observing, want 3", got)
	}
}

func TestNavigateClampsAtEnds(t *testing.T) {
	const n, h = 5, 800.0
	rec := &recordScroller{}
	s := New(n, h, rec)

	s.Observe(0)
	s.Navigate(Prev)
	if got := rec.last(t); got != 0 {
		t.Fatalf("prev at first section: target = %v, want 0", got)
	}

	s.Observe((n - 1) * h)
	s.Navigate(Next)
	if got := rec.last(t); got != (n-1)*h {
		t.Fatalf("next at last section: target = %v, want %v", got, (n-1)*h)
	}
}

func TestScenarioFiveSections(t *testing.T) {
	rec := &recordScroller{}
	s := New(5, 800, rec)

	s.Observe(1650)
	if got := s.State().ActiveIndex; got != 2 {
		t.Fatalf("ActiveIndex at 1650 = %d, want 2", got)
	}
	s.Navigate(Next)
	if got := rec.last(t); got != 2400 {
		t.Fatalf("next from 2 target = %v, want 2400", got)
	}
	s.Navigate(Prev)
	if got := rec.last(t); got != 800 {
		t.Fatalf("prev from 2 target = %v, want 800", got)
	}
}

func TestEmptySynchronizer(t *testing.T) {
	rec := &recordScroller{}
	s := New(0, 800, rec)
	s.Observe(1234)
	s.Navigate(Next)
	s.JumpTo(3)
	if got := s.State().ActiveIndex; got != 0 {
		t.Fatalf("ActiveIndex = %d, want 0", got)
	}
	for _, target := range rec.targets {
		if target != 0 {
			t.Fatalf("target = %v, want 0", target)
		}
	}
}

func TestMenuDoesNotTouchActiveIndex(t *testing.T) {
	rec := &recordScroller{}
	s := New(5, 800, rec)
	s.Observe(2500)

	s.SetMenuOpen(true)
	st := s.State()
	if !st.MenuOpen || st.ActiveIndex != 3 {
		t.Fatalf("state after open = %+v", st)
	}
	s.ToggleMenu()
	st = s.State()
	if st.MenuOpen || st.ActiveIndex != 3 {
		t.Fatalf("state after toggle = %+v", st)
	}
	if len(rec.targets) != 0 {
		t.Fatalf("menu changes requested scrolls: %v", rec.targets)
	}
}

func TestSelectSectionIsOneUpdate(t *testing.T) {
	rec := &recordScroller{}
	s := New(5, 800, rec)
	s.SetMenuOpen(true)

	var seen []State
	var targetsAtNotify []int
	cancel := s.Subscribe(func(st State) {
		seen = append(seen, st)
		targetsAtNotify = append(targetsAtNotify, len(rec.targets))
	})
	defer cancel()

	s.SelectSection(4)

	if len(seen) != 1 {
		t.Fatalf("notifications = %d, want 1", len(seen))
	}
	if seen[0].MenuOpen {
		t.Fatal("menu still open in notification")
	}
	if targetsAtNotify[0] != 1 {
		t.Fatalf("scroll not yet requested when subscribers ran")
	}
	if got := rec.last(t); got != 3200 {
		t.Fatalf("target = %v, want 3200", got)
	}
}

// instantScroller reports the new offset before ScrollTo returns.
type instantScroller struct {
	s *Synchronizer
}

func (i *instantScroller) ScrollTo(target float64) { i.s.Observe(target) }

func TestSelectSectionWithSynchronousScroller(t *testing.T) {
	sc := &instantScroller{}
	s := New(5, 800, sc)
	sc.s = s
	s.SetMenuOpen(true)

	s.SelectSection(2)
	st := s.State()
	if st.MenuOpen || st.ActiveIndex != 2 || !st.ScrolledPastThreshold {
		t.Fatalf("state = %+v, want closed menu on section 2", st)
	}
}

func TestSubscribeCancel(t *testing.T) {
	s := New(5, 100, &recordScroller{})
	var a, b int
	cancelA := s.Subscribe(func(State) { a++ })
	s.Subscribe(func(State) { b++ })

	s.Observe(150)
	cancelA()
	cancelA()
	s.Observe(250)
	s.Observe(251)

	if a != 1 {
		t.Fatalf("cancelled subscriber called %d times, want 1", a)
	}
	if b != 2 {
		t.Fatalf("subscriber called %d times, want 2 (no call without a change)", b)
	}
}

func TestResizeRederives(t *testing.T) {
	s := New(5, 800, &recordScroller{})
	s.Observe(1650)
	var notified int
	s.Subscribe(func(State) { notified++ })
	s.Resize(400, 825)
	if notified != 0 {
		t.Fatalf("resize keeping the section notified %d times", notified)
	}
	if got := s.State().ActiveIndex; got != 2 {
		t.Fatalf("ActiveIndex after resize = %d, want 2", got)
	}
	if got := s.Offset(); got != 825 {
		t.Fatalf("Offset after resize = %v, want 825", got)
	}
	if got := s.Target(2); got != 800 {
		t.Fatalf("Target(2) = %v, want 800", got)
	}
}
