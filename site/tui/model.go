// Package tui runs the presentation in a terminal. One text row counts as
// one pixel of scroll offset and the terminal height is the section height.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"t219/site/content"
	"t219/site/quarkgl"
	"t219/site/scene"
	"t219/site/scroll"
	"t219/site/shell"
)

const (
	// FrameInterval matches the host window's 30 fps knot cadence.
	FrameInterval = 33 * time.Millisecond

	wheelRows = 3
	dragPx    = 8
	maxDelta  = 250 * time.Millisecond
)

const (
	colorWhite   = "#FFFFFF"
	colorDimDot  = "#4D4D4D"
	colorNavBG   = "#F2F2F2"
	colorNavText = "#1F2937"
	colorNavIcon = "#2563EB"
	colorMenuBG  = "#0D0D0D"
	colorArrowBG = "#262626"
)

// Options configures a Model.
type Options struct {
	Catalog  *content.Catalog
	Scene    scene.Config
	// Duration is the smooth scroll length. Zero keeps
	// scroll.DefaultDuration; a negative value scrolls instantly.
	Duration time.Duration
	SnapIdle time.Duration
	Logger   *zap.Logger
}

type frameMsg time.Time

// Model is the bubbletea model. Use it through a pointer.
type Model struct {
	cat  *content.Catalog
	sync *scroll.Synchronizer
	vp   *scroll.Viewport
	sh   *shell.Shell
	bg   *scene.Background
	spin *scene.Spinner
	tw   shell.Tween
	luma *quarkgl.LumaTarget
	g    grid
	log  *zap.Logger

	keys keyMap
	help help.Model

	w, h int
	last time.Time

	dragging     bool
	dragX, dragY int
}

var _ tea.Model = (*Model)(nil)

// New builds a model. The section height is fixed by the first window size
// message.
func New(opts Options) *Model {
	cat := opts.Catalog
	if cat == nil {
		cat = content.Default()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	vp := scroll.NewViewport(1, cat.Len())
	if opts.Duration != 0 {
		vp.Duration = max(opts.Duration, 0)
	}
	vp.SnapIdle = opts.SnapIdle
	sync := scroll.New(cat.Len(), 1, vp)
	vp.SetObserver(sync.Observe)

	sc := opts.Scene
	sc.Mono = true

	m := &Model{
		cat:  cat,
		sync: sync,
		vp:   vp,
		sh:   shell.New(cat, sync),
		bg:   scene.New(sc),
		spin: scene.NewSpinner(),
		luma: quarkgl.NewLumaTarget(0, 0),
		log:  log,
		keys: defaultKeyMap(),
		help: help.New(),
	}

	prev := sync.State()
	sync.Subscribe(func(st scroll.State) {
		if st.ActiveIndex != prev.ActiveIndex {
			m.log.Debug("section", zap.Int("index", st.ActiveIndex), zap.String("id", cat.At(st.ActiveIndex).ID))
		}
		if st.MenuOpen != prev.MenuOpen {
			m.log.Debug("menu", zap.Bool("open", st.MenuOpen))
		}
		prev = st
	})
	return m
}

// State returns the navigation state.
func (m *Model) State() scroll.State { return m.sync.State() }

// Offset returns the scroll offset in rows.
func (m *Model) Offset() float64 { return m.vp.Offset() }

func tick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) Init() tea.Cmd { return tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case frameMsg:
		m.step(time.Time(msg))
		return m, tick()

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

func (m *Model) pageHeight() int {
	if m.h <= 1 {
		return 1
	}
	return m.h - 1
}

func (m *Model) resize(w, h int) {
	m.w, m.h = w, h
	m.help.Width = w
	ph := float64(m.pageHeight())
	m.vp.Resize(ph)
	m.sync.Resize(ph, m.vp.Offset())
	m.luma.Resize(w, m.pageHeight())
	m.log.Debug("resize", zap.Int("cols", w), zap.Int("rows", h))
}

func (m *Model) step(now time.Time) {
	dt := FrameInterval
	if !m.last.IsZero() {
		dt = now.Sub(m.last)
	}
	if dt > maxDelta {
		dt = maxDelta
	}
	m.last = now
	m.vp.Advance(dt)
	m.spin.Step(1)
	m.tw.Advance(m.frame(), dt)
}

func (m *Model) frame() shell.Frame {
	return m.sh.Frame(m.w, m.pageHeight())
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Wireframe):
		m.bg.ToggleWireframe()
	case key.Matches(msg, m.keys.Prev):
		m.sh.HandleKey(shell.KeyUp)
	case key.Matches(msg, m.keys.Next):
		if msg.String() == " " {
			m.sh.HandleKey(shell.KeySpace)
		} else {
			m.sh.HandleKey(shell.KeyDown)
		}
	case key.Matches(msg, m.keys.Home):
		m.sh.HandleKey(shell.KeyHome)
	case key.Matches(msg, m.keys.End):
		m.sh.HandleKey(shell.KeyEnd)
	case key.Matches(msg, m.keys.Menu):
		m.sh.HandleKey(shell.KeyMenu)
	case key.Matches(msg, m.keys.Select):
		m.sh.HandleKey(shell.KeyEnter)
	case key.Matches(msg, m.keys.Close):
		m.sh.HandleKey(shell.KeyEscape)
	default:
		if r := msg.Runes; len(r) == 1 {
			m.sh.HandleRune(r[0])
		}
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.vp.ScrollBy(-wheelRows)
		return
	case tea.MouseButtonWheelDown:
		m.vp.ScrollBy(wheelRows)
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if c := m.g.hitAt(msg.X, msg.Y); c.Kind != shell.ControlNone {
			m.sh.Activate(c)
			return
		}
		m.dragging = true
		m.dragX, m.dragY = msg.X, msg.Y
	case tea.MouseActionMotion:
		if !m.dragging {
			return
		}
		m.bg.Drag((msg.X-m.dragX)*dragPx, (msg.Y-m.dragY)*dragPx)
		m.dragX, m.dragY = msg.X, msg.Y
	case tea.MouseActionRelease:
		m.dragging = false
	}
}

func (m *Model) View() string {
	if m.w <= 0 || m.h <= 0 {
		return ""
	}
	f := m.frame()
	ph := m.pageHeight()
	m.g.reset(m.w, ph)

	rendered := false
	for _, p := range f.Visible() {
		o := m.tw.Opacity(p.Index)
		if o <= 0 {
			continue
		}
		if !rendered {
			m.bg.Render(m.luma, f.Active.Accent, m.spin.Angle)
			rendered = true
		}
		m.drawPanel(f, p, o)
	}
	m.drawDots(f)
	m.drawArrows()
	m.drawMenu(f)
	m.drawNav(f)

	return m.g.String() + "\n" + m.help.View(m.keys)
}

func (m *Model) drawPanel(f shell.Frame, p shell.Panel, o float32) {
	ph := m.g.h
	knot := dim(f.Active.Accent, o)
	for sy := 0; sy < m.luma.H; sy++ {
		y := p.Y + sy
		row := m.luma.Row(sy)
		for x, ch := range row {
			if ch != ' ' {
				m.g.put(x, y, rune(ch), knot, false)
			}
		}
	}

	if _, ay, ok := m.bg.TitleAnchor(m.luma); ok {
		m.g.centered(p.Y+ay, f.Active.Title, dim(f.Active.Accent, o), true)
	}

	lines := wrapWords(p.Section.Spans(), bodyWidth(m.w))
	top := p.Y + (ph-len(lines)-2)/2
	m.g.centered(top, p.Section.Title, dim(p.Section.Accent, o), true)
	white := dim(content.Color{R: 0xFF, G: 0xFF, B: 0xFF}, o)
	for i, ln := range lines {
		x := (m.w - ln.width()) / 2
		for _, sp := range ln {
			x = m.g.text(x, top+2+i, sp.Text, white, sp.Style&content.StyleStrong != 0)
		}
	}

	if p.ShowChevron {
		y := p.Y + ph - 3
		if (m.tw.Clock()/(500*time.Millisecond))%2 == 1 {
			y--
		}
		m.g.put(m.w/2, y, 'v', white, true)
		m.g.mark(m.w/2-1, y, 3, shell.Control{Kind: shell.ControlChevron, Index: p.Index})
	}
}

func (m *Model) drawDots(f shell.Frame) {
	n := len(f.Dots)
	if n == 0 {
		return
	}
	y := m.g.h - 1
	x := (m.w - (2*n - 1)) / 2
	for i, d := range f.Dots {
		fg := colorDimDot
		if d.Active {
			fg = d.Color.Hex()
		}
		m.g.put(x+2*i, y, '●', fg, false)
		m.g.mark(x+2*i, y, 1, shell.Control{Kind: shell.ControlDot, Index: i})
	}
}

func (m *Model) drawArrows() {
	y := m.g.h / 2
	for _, a := range []struct {
		x    int
		r    rune
		kind shell.ControlKind
	}{
		{1, '‹', shell.ControlPrev},
		{m.w - 4, '›', shell.ControlNext},
	} {
		m.g.clear(a.x, y, 3, colorArrowBG)
		m.g.put(a.x+1, y, a.r, colorWhite, true)
		m.g.mark(a.x, y, 3, shell.Control{Kind: a.kind})
	}
}

func (m *Model) drawMenu(f shell.Frame) {
	slide := m.tw.MenuSlide()
	if slide <= 0 {
		return
	}
	mw := menuWidth(m.w)
	x := m.w - int(slide*float32(mw))
	for y := 1; y < m.g.h; y++ {
		m.g.clear(x, y, mw, colorMenuBG)
		m.g.mark(x, y, mw, shell.Control{})
	}
	for i, it := range f.Menu.Items {
		y := 2 + 2*i
		title := it.Title
		if it.Focus {
			title = "› " + title
		} else {
			title = "  " + title
		}
		m.g.text(x+2, y, title, it.Accent.Hex(), it.Bold)
		if f.Menu.Open {
			m.g.mark(x, y, mw, shell.Control{Kind: shell.ControlMenuItem, Index: i})
		}
	}
}

func (m *Model) drawNav(f shell.Frame) {
	text, icon, bg := colorWhite, colorWhite, ""
	if m.tw.NavOpacity() >= 0.5 {
		bg = colorNavBG
	}
	if f.Nav.Opaque {
		text, icon = colorNavText, colorNavIcon
	}
	if bg != "" {
		m.g.clear(0, 0, m.w, bg)
	}
	m.g.put(1, 0, '■', icon, false)
	m.g.text(3, 0, shell.Brand, text, true)
	m.g.text(m.w-2, 0, f.Nav.Icon, text, true)
	m.g.mark(m.w-4, 0, 4, shell.Control{Kind: shell.ControlMenuButton})
}

func bodyWidth(w int) int {
	bw := w - 8
	if bw > 60 {
		bw = 60
	}
	if bw < 10 {
		bw = 10
	}
	return bw
}

func menuWidth(w int) int {
	mw := w * 3 / 5
	if mw > 32 {
		mw = 32
	}
	return mw
}

type spanLine []content.Span

func (l spanLine) width() int {
	n := 0
	for _, sp := range l {
		n += len([]rune(sp.Text))
	}
	return n
}

// wrapWords breaks spans into lines of at most width runes.
func wrapWords(spans []content.Span, width int) []spanLine {
	var (
		lines []spanLine
		cur   spanLine
		n     int
	)
	for _, sp := range spans {
		for _, word := range strings.Fields(sp.Text) {
			wl := len([]rune(word))
			if n > 0 && n+1+wl > width {
				lines = append(lines, cur)
				cur, n = nil, 0
			}
			if n > 0 {
				cur = append(cur, content.Span{Text: " "})
				n++
			}
			cur = append(cur, content.Span{Text: word, Style: sp.Style})
			n += wl
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// Run starts the terminal front-end and blocks until the user quits.
func Run(opts Options) error {
	_, err := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
