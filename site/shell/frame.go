// Package shell composes the section catalog and the scroll synchronizer
// into what is shown: full-viewport panels, a navigation header, a
// slide-out menu, paging arrows, a "next" chevron and position dots.
//
// Rendering is split in two. Render is a pure function from navigation
// state to a Frame of visual parameters; painters in other packages turn a
// Frame into pixels or terminal cells. Shell routes clicks and keys back to
// the synchronizer, the only path that moves the scroll offset.
package shell

import (
	"math"

	"t219/site/content"
	"t219/site/scroll"
)

// Brand is the name shown in the navigation header.
const Brand = "T219 Project"

const (
	IconMenuClosed = "☰"
	IconMenuOpen   = "×"
)

// Panel is one section placed in the viewport.
type Panel struct {
	Index   int
	Section content.Section

	// Y is the panel's top edge in viewport pixels. It is negative once
	// the panel starts scrolling out above the viewport.
	Y int

	// Opacity is the target opacity: 1 for the active panel, 0 otherwise.
	Opacity float32

	// ShowChevron is set on every panel but the last.
	ShowChevron bool
}

// Dot is one position indicator.
type Dot struct {
	Active bool
	// Color is the section accent for the active dot and white otherwise.
	Color content.Color
	// Alpha is 0xFF for the active dot and translucent otherwise.
	Alpha uint8
}

// NavBar is the fixed header.
type NavBar struct {
	// Opaque is set once the page is scrolled past the threshold.
	Opaque bool
	Icon   string
}

// MenuItem is one entry of the slide-out menu.
type MenuItem struct {
	Title  string
	Accent content.Color
	Bold   bool
	Focus  bool
}

// Menu is the slide-out section list.
type Menu struct {
	Open  bool
	Items []MenuItem
}

// Frame holds every visual parameter for one paint.
type Frame struct {
	State  scroll.State
	Offset float64
	Width  int
	Height int

	// Active is the section the background knot and floating title follow.
	Active content.Section

	Panels []Panel
	Dots   []Dot
	Nav    NavBar
	Menu   Menu
}

const dotAlpha = 0x4D // rgba(255,255,255,0.3)

var white = content.Color{R: 0xFF, G: 0xFF, B: 0xFF}

// Render derives a Frame from the catalog and navigation state. focus is
// the keyboard-highlighted menu item, or -1.
func Render(cat *content.Catalog, st scroll.State, offset float64, w, h, focus int) Frame {
	n := cat.Len()
	f := Frame{
		State:  st,
		Offset: offset,
		Width:  w,
		Height: h,
		Nav: NavBar{
			Opaque: st.ScrolledPastThreshold,
			Icon:   IconMenuClosed,
		},
		Menu: Menu{Open: st.MenuOpen},
	}
	if st.MenuOpen {
		f.Nav.Icon = IconMenuOpen
	}
	if n == 0 {
		return f
	}

	active := st.ActiveIndex
	if active < 0 || active >= n {
		active = 0
	}
	f.Active = cat.At(active)

	f.Panels = make([]Panel, n)
	f.Dots = make([]Dot, n)
	f.Menu.Items = make([]MenuItem, n)
	for i := 0; i < n; i++ {
		sec := cat.At(i)
		p := Panel{
			Index:       i,
			Section:     sec,
			Y:           int(math.Round(float64(i*h) - offset)),
			ShowChevron: i < n-1,
		}
		d := Dot{Color: white, Alpha: dotAlpha}
		if i == active {
			p.Opacity = 1
			d = Dot{Active: true, Color: sec.Accent, Alpha: 0xFF}
		}
		f.Panels[i] = p
		f.Dots[i] = d
		f.Menu.Items[i] = MenuItem{
			Title:  sec.Title,
			Accent: sec.Accent,
			Bold:   i == active,
			Focus:  st.MenuOpen && i == focus,
		}
	}
	return f
}

// Visible returns the panels that intersect the viewport.
func (f Frame) Visible() []Panel {
	var out []Panel
	for _, p := range f.Panels {
		if p.Y+f.Height <= 0 || p.Y >= f.Height {
			continue
		}
		out = append(out, p)
	}
	return out
}
