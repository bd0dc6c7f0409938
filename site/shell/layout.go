package shell

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// ControlKind identifies an interactive element.
type ControlKind uint8

const (
	ControlNone ControlKind = iota
	ControlMenuButton
	ControlMenuItem
	ControlPrev
	ControlNext
	ControlDot
	ControlChevron
)

func (k ControlKind) String() string {
	switch k {
	case ControlMenuButton:
		return "menu-button"
	case ControlMenuItem:
		return "menu-item"
	case ControlPrev:
		return "prev"
	case ControlNext:
		return "next"
	case ControlDot:
		return "dot"
	case ControlChevron:
		return "chevron"
	default:
		return "none"
	}
}

// Control is a hit-test result. Index is the section for menu items, dots
// and chevrons.
type Control struct {
	Kind  ControlKind
	Index int
}

// Layout places the chrome for a w×h viewport.
type Layout struct {
	W, H int

	NavBar     Rect
	MenuButton Rect
	Menu       Rect
	MenuItems  []Rect

	Prev, Next Rect
	Dots       []Rect

	// Chevron is relative to a panel's top edge.
	Chevron Rect
}

const (
	arrowSize = 24
	dotSize   = 8
	dotGap    = 6
	itemH     = 24
)

// NewLayout computes chrome positions for count sections.
func NewLayout(w, h, count int) Layout {
	l := Layout{W: w, H: h}
	if w <= 0 || h <= 0 {
		return l
	}

	navH := h / 12
	if navH < 20 {
		navH = 20
	}
	l.NavBar = Rect{0, 0, w, navH}
	l.MenuButton = Rect{w - navH, 0, navH, navH}

	menuW := w * 3 / 5
	if menuW > 200 {
		menuW = 200
	}
	l.Menu = Rect{w - menuW, navH, menuW, h - navH}
	l.MenuItems = make([]Rect, count)
	for i := range l.MenuItems {
		l.MenuItems[i] = Rect{l.Menu.X + 8, navH + 12 + i*itemH, menuW - 16, itemH}
	}

	mid := h/2 - arrowSize/2
	l.Prev = Rect{6, mid, arrowSize, arrowSize}
	l.Next = Rect{w - 6 - arrowSize, mid, arrowSize, arrowSize}

	rowW := count*dotSize + (count-1)*dotGap
	x0 := (w - rowW) / 2
	l.Dots = make([]Rect, count)
	for i := range l.Dots {
		l.Dots[i] = Rect{x0 + i*(dotSize+dotGap), h - 16, dotSize, dotSize}
	}

	l.Chevron = Rect{w/2 - 10, h - 44, 20, 14}
	return l
}

// ChevronAt returns the chevron rectangle for a panel whose top edge is at
// panelY.
func (l Layout) ChevronAt(panelY int) Rect {
	r := l.Chevron
	r.Y += panelY
	return r
}

// HitTest returns the control under (x, y). Elements are tested in paint
// order from the top: the open menu, the header, arrows and dots, then the
// chevrons of visible panels.
func (l Layout) HitTest(x, y int, f Frame) Control {
	if l.MenuButton.Contains(x, y) {
		return Control{Kind: ControlMenuButton}
	}
	if f.Menu.Open && l.Menu.Contains(x, y) {
		for i, r := range l.MenuItems {
			if r.Contains(x, y) {
				return Control{Kind: ControlMenuItem, Index: i}
			}
		}
		return Control{}
	}
	if l.NavBar.Contains(x, y) {
		return Control{}
	}
	if l.Prev.Contains(x, y) {
		return Control{Kind: ControlPrev}
	}
	if l.Next.Contains(x, y) {
		return Control{Kind: ControlNext}
	}
	for i, r := range l.Dots {
		if r.Contains(x, y) {
			return Control{Kind: ControlDot, Index: i}
		}
	}
	for _, p := range f.Visible() {
		if p.ShowChevron && l.ChevronAt(p.Y).Contains(x, y) {
			return Control{Kind: ControlChevron, Index: p.Index}
		}
	}
	return Control{}
}
