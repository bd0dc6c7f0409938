// Package scroll maps a vertical scroll offset onto the active section and
// turns navigation intents into scroll requests.
//
// Each section occupies exactly one viewport height. The Synchronizer never
// sets the active index directly: controls request a scroll target and the
// index follows once the resulting offset is observed.
package scroll

import "math"

// ThresholdPx is the offset past which the page counts as scrolled.
const ThresholdPx = 50

// Direction selects a neighbouring section.
type Direction int8

const (
	Prev Direction = -1
	Next Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Prev:
		return "prev"
	case Next:
		return "next"
	default:
		return "none"
	}
}

// State is the navigation state shared by every view of the presentation.
type State struct {
	ActiveIndex           int
	ScrolledPastThreshold bool
	MenuOpen              bool
}

// Scroller performs a smooth, fire-and-forget scroll to target.
type Scroller interface {
	ScrollTo(target float64)
}

// ActiveIndex derives the active section from a scroll offset.
func ActiveIndex(offset, height float64, count int) int {
	if count <= 0 || height <= 0 || math.IsNaN(offset) {
		return 0
	}
	i := math.Floor(offset / height)
	if i < 0 {
		return 0
	}
	if i > float64(count-1) {
		return count - 1
	}
	return int(i)
}

// PastThreshold reports whether offset counts as scrolled.
func PastThreshold(offset float64) bool { return offset > ThresholdPx }

// Synchronizer owns the navigation state. It is not safe for concurrent
// use; all calls are expected from the single update loop.
type Synchronizer struct {
	count    int
	height   float64
	offset   float64
	scroller Scroller

	state State

	updating bool
	deferred bool

	subs   map[int]func(State)
	order  []int
	nextID int
}

// New returns a synchronizer for count sections of the given viewport height.
func New(count int, height float64, s Scroller) *Synchronizer {
	if count < 0 {
		count = 0
	}
	return &Synchronizer{
		count:    count,
		height:   height,
		scroller: s,
		subs:     make(map[int]func(State)),
	}
}

// State returns the current navigation state.
func (s *Synchronizer) State() State { return s.state }

// Count returns the number of sections.
func (s *Synchronizer) Count() int { return s.count }

// Height returns the viewport height used as the section stride.
func (s *Synchronizer) Height() float64 { return s.height }

// Offset returns the last observed scroll offset.
func (s *Synchronizer) Offset() float64 { return s.offset }

// Subscribe registers fn to be called with the new state after every change.
// The returned func removes the subscription.
func (s *Synchronizer) Subscribe(fn func(State)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)
	return func() {
		if _, ok := s.subs[id]; !ok {
			return
		}
		delete(s.subs, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Observe is the scroll observer: it records offset and re-derives state.
func (s *Synchronizer) Observe(offset float64) {
	s.offset = offset
	if s.updating {
		s.deferred = true
		return
	}
	s.update(func(st *State) {
		st.ActiveIndex = ActiveIndex(offset, s.height, s.count)
		st.ScrolledPastThreshold = PastThreshold(offset)
	})
}

// Resize changes the viewport height and re-derives the state from offset,
// the scroll position after the surface was resized. Height and offset
// change together so no notification pairs one with a stale other.
func (s *Synchronizer) Resize(height, offset float64) {
	s.height = height
	s.Observe(offset)
}

// Target returns the scroll offset of section i after clamping.
func (s *Synchronizer) Target(i int) float64 {
	return float64(s.clamp(i)) * s.height
}

// JumpTo requests a smooth scroll to section i, clamped to the valid range.
// The active index follows when the scroll is observed.
func (s *Synchronizer) JumpTo(i int) {
	if s.scroller == nil {
		return
	}
	s.scroller.ScrollTo(s.Target(i))
}

// Navigate jumps to the neighbouring section. There is no wraparound.
func (s *Synchronizer) Navigate(d Direction) {
	s.JumpTo(s.state.ActiveIndex + int(d))
}

// SetMenuOpen opens or closes the section menu. The active index is untouched.
func (s *Synchronizer) SetMenuOpen(open bool) {
	s.update(func(st *State) { st.MenuOpen = open })
}

// ToggleMenu flips the menu state.
func (s *Synchronizer) ToggleMenu() { s.SetMenuOpen(!s.state.MenuOpen) }

// SelectSection closes the menu and requests a scroll to section k as one
// update: subscribers never see one without the other.
func (s *Synchronizer) SelectSection(k int) {
	s.update(func(st *State) {
		st.MenuOpen = false
		s.JumpTo(k)
	})
}

func (s *Synchronizer) clamp(i int) int {
	if s.count <= 0 || i < 0 {
		return 0
	}
	if i > s.count-1 {
		return s.count - 1
	}
	return i
}

// update applies fn and notifies subscribers once if the state changed.
// Scrolls requested inside fn are not observed until fn returns.
func (s *Synchronizer) update(fn func(*State)) {
	prev := s.state
	next := prev
	s.updating = true
	fn(&next)
	s.updating = false
	s.state = next
	if next != prev {
		ids := append([]int(nil), s.order...)
		for _, id := range ids {
			if sub, ok := s.subs[id]; ok {
				sub(next)
			}
		}
	}
	if s.deferred {
		s.deferred = false
		s.Observe(s.offset)
	}
}
