package shell

import (
	"t219/site/content"
	"t219/site/scroll"
)

// Key is a navigation key, independent of the input backend.
type Key uint8

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyEnter
	KeyEscape
	KeyMenu
	KeySpace
)

// Shell routes user intent to the synchronizer and renders frames.
type Shell struct {
	cat  *content.Catalog
	sync *scroll.Synchronizer

	layout Layout

	// focus is the keyboard-highlighted menu item while the menu is open.
	focus int
}

// New returns a shell over cat driven by sync.
func New(cat *content.Catalog, sync *scroll.Synchronizer) *Shell {
	s := &Shell{cat: cat, sync: sync, focus: -1}
	sync.Subscribe(func(st scroll.State) {
		if !st.MenuOpen {
			s.focus = -1
		} else if s.focus < 0 {
			s.focus = st.ActiveIndex
		}
	})
	return s
}

// Catalog returns the shell's sections.
func (s *Shell) Catalog() *content.Catalog { return s.cat }

// Sync returns the synchronizer the shell drives.
func (s *Shell) Sync() *scroll.Synchronizer { return s.sync }

// Layout returns the chrome layout for a w×h viewport, cached between
// calls with the same size.
func (s *Shell) Layout(w, h int) Layout {
	if s.layout.W != w || s.layout.H != h || len(s.layout.Dots) != s.cat.Len() {
		s.layout = NewLayout(w, h, s.cat.Len())
	}
	return s.layout
}

// Frame renders the current state for a w×h viewport.
func (s *Shell) Frame(w, h int) Frame {
	return Render(s.cat, s.sync.State(), s.sync.Offset(), w, h, s.focus)
}

// Focus returns the keyboard-highlighted menu item, or -1.
func (s *Shell) Focus() int { return s.focus }

// Activate performs the action bound to c.
func (s *Shell) Activate(c Control) {
	switch c.Kind {
	case ControlMenuButton:
		s.sync.ToggleMenu()
	case ControlMenuItem:
		s.sync.SelectSection(c.Index)
	case ControlPrev:
		s.sync.Navigate(scroll.Prev)
	case ControlNext, ControlChevron:
		s.sync.Navigate(scroll.Next)
	case ControlDot:
		s.sync.JumpTo(c.Index)
	}
}

// Click hit-tests (x, y) in a w×h viewport and activates the result.
func (s *Shell) Click(x, y, w, h int) Control {
	c := s.Layout(w, h).HitTest(x, y, s.Frame(w, h))
	s.Activate(c)
	return c
}

// HandleKey applies a navigation key. It reports whether the key was used.
func (s *Shell) HandleKey(k Key) bool {
	if s.sync.State().MenuOpen {
		return s.menuKey(k)
	}
	switch k {
	case KeyUp, KeyPageUp:
		s.sync.Navigate(scroll.Prev)
	case KeyDown, KeyPageDown, KeySpace:
		s.sync.Navigate(scroll.Next)
	case KeyHome:
		s.sync.JumpTo(0)
	case KeyEnd:
		s.sync.JumpTo(s.cat.Len() - 1)
	case KeyMenu:
		s.sync.SetMenuOpen(true)
	default:
		return false
	}
	return true
}

func (s *Shell) menuKey(k Key) bool {
	n := s.cat.Len()
	switch k {
	case KeyUp:
		if s.focus > 0 {
			s.focus--
		}
	case KeyDown:
		if s.focus < n-1 {
			s.focus++
		}
	case KeyHome, KeyPageUp:
		s.focus = 0
	case KeyEnd, KeyPageDown:
		s.focus = n - 1
	case KeyEnter, KeySpace:
		if s.focus >= 0 {
			s.sync.SelectSection(s.focus)
		}
	case KeyEscape, KeyMenu:
		s.sync.SetMenuOpen(false)
	default:
		return false
	}
	return true
}

// HandleRune applies a printable key: digits jump to a section and 'm'
// toggles the menu.
func (s *Shell) HandleRune(r rune) bool {
	switch {
	case r >= '1' && r <= '9':
		i := int(r - '1')
		if i >= s.cat.Len() {
			return false
		}
		if s.sync.State().MenuOpen {
			s.sync.SelectSection(i)
		} else {
			s.sync.JumpTo(i)
		}
		return true
	case r == 'm' || r == 'M':
		s.sync.ToggleMenu()
		return true
	case r == 'j':
		return s.HandleKey(KeyDown)
	case r == 'k':
		return s.HandleKey(KeyUp)
	case r == ' ':
		return s.HandleKey(KeySpace)
	}
	return false
}
