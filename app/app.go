// Package app wires the presentation to a HAL: it drains input and ticks,
// advances the scroll animation and paints frames.
package app

import (
	"errors"
	"fmt"
	"time"

	"t219/hal"
	"t219/site/content"
	"t219/site/scene"
	"t219/site/scroll"
	"t219/site/shell"
	"t219/site/view"
)

// frameIntervalTicks is the repaint cadence in HAL ticks (about 30 fps).
const frameIntervalTicks = 33

// maxFrameTicks caps the time one repaint may account for, so a stalled
// host does not fast-forward animations.
const maxFrameTicks = 250

// Config controls the presentation.
type Config struct {
	// Catalog supplies the sections. Nil uses the built-in catalog.
	Catalog *content.Catalog

	Scene    scene.Config
	// Duration is the smooth scroll length. Zero keeps
	// scroll.DefaultDuration; a negative value scrolls instantly.
	Duration time.Duration
	SnapIdle time.Duration

	// FrameTicks overrides frameIntervalTicks.
	FrameTicks uint64

	// ExitOnPanic makes a recovered panic stop the step loop after the
	// crash screen is drawn. Otherwise the crash screen stays up.
	ExitOnPanic bool
}

type presentation struct {
	h   hal.HAL
	log hal.Logger
	fb  hal.Framebuffer
	cfg Config

	cat     *content.Catalog
	sync    *scroll.Synchronizer
	vp      *scroll.Viewport
	sh      *shell.Shell
	bg      *scene.Background
	spin    *scene.Spinner
	painter *view.Painter

	kbd   <-chan hal.KeyEvent
	ptr   <-chan hal.PointerEvent
	ticks <-chan uint64

	lastTick uint64
	pending  uint64

	dragging bool
	px, py   int

	noDisplay bool
	crashed   bool
}

// New builds the presentation on h and returns its step function. The
// caller invokes step once per host frame.
func New(h hal.HAL, cfg Config) (func() error, error) {
	p, err := newPresentation(h, cfg)
	if err != nil {
		return nil, err
	}
	return p.guardedStep, nil
}

// Run builds the presentation and steps it forever (TinyGo entrypoint).
func Run(h hal.HAL, cfg Config) {
	step, err := New(h, cfg)
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString("t219: " + err.Error())
		}
		select {}
	}
	for {
		if err := step(); err != nil {
			select {}
		}
		time.Sleep(time.Millisecond)
	}
}

func newPresentation(h hal.HAL, cfg Config) (*presentation, error) {
	if h == nil {
		return nil, errors.New("app: nil HAL")
	}
	cat := cfg.Catalog
	if cat == nil {
		cat = content.Default()
	}
	if cat.Len() == 0 {
		return nil, errors.New("app: empty catalog")
	}
	if cfg.FrameTicks == 0 {
		cfg.FrameTicks = frameIntervalTicks
	}

	p := &presentation{h: h, log: h.Logger(), cfg: cfg, cat: cat}
	if d := h.Display(); d != nil {
		p.fb = d.Framebuffer()
	}
	if p.fb == nil || p.fb.Buffer() == nil || p.fb.Width() <= 0 || p.fb.Height() <= 0 {
		p.noDisplay = true
	}
	if !p.noDisplay {
		splash(p.fb, "building scene")
	}

	height := float64(1)
	if !p.noDisplay {
		height = float64(p.fb.Height())
	}
	p.vp = scroll.NewViewport(height, cat.Len())
	if cfg.Duration != 0 {
		p.vp.Duration = max(cfg.Duration, 0)
	}
	p.vp.SnapIdle = cfg.SnapIdle
	p.sync = scroll.New(cat.Len(), height, p.vp)
	p.vp.SetObserver(p.sync.Observe)
	p.sh = shell.New(cat, p.sync)
	p.bg = scene.New(cfg.Scene)
	p.spin = scene.NewSpinner()
	if !p.noDisplay {
		p.painter = view.New(p.fb, p.bg)
	}

	if in := h.Input(); in != nil {
		if k := in.Keyboard(); k != nil {
			p.kbd = k.Events()
		}
		if ptr := in.Pointer(); ptr != nil {
			p.ptr = ptr.Events()
		}
	}
	if t := h.Time(); t != nil {
		p.ticks = t.Ticks()
	}

	prev := p.sync.State()
	p.sync.Subscribe(func(st scroll.State) {
		if st.ActiveIndex != prev.ActiveIndex {
			p.logf("section %d %s", st.ActiveIndex, cat.At(st.ActiveIndex).ID)
		}
		if st.MenuOpen != prev.MenuOpen {
			p.logf("menu open=%v", st.MenuOpen)
		}
		prev = st
	})

	p.logf("ready: %d sections", cat.Len())
	// Paint the first frame straight away.
	p.pending = cfg.FrameTicks
	return p, nil
}

func (p *presentation) logf(format string, args ...any) {
	if p.log != nil {
		p.log.WriteLineString("t219: " + fmt.Sprintf(format, args...))
	}
}

func (p *presentation) guardedStep() (err error) {
	if p.crashed {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = p.crash(r)
		}
	}()
	return p.step()
}

func (p *presentation) step() error {
	p.drainTicks()
	p.drainKeys()
	p.drainPointer()

	if p.pending < p.cfg.FrameTicks {
		return nil
	}
	frames := p.pending / p.cfg.FrameTicks
	p.pending %= p.cfg.FrameTicks
	dt := time.Duration(min(frames*p.cfg.FrameTicks, maxFrameTicks)) * hal.TickDuration

	p.vp.Advance(dt)
	p.spin.Step(int(frames))
	if p.noDisplay {
		return nil
	}

	w, h := p.fb.Width(), p.fb.Height()
	f := p.sh.Frame(w, h)
	p.painter.Advance(f, dt)
	err := p.painter.Paint(f, p.sh.Layout(w, h), p.spin.Angle)
	if errors.Is(err, hal.ErrNotImplemented) {
		p.logf("display unavailable, painting disabled")
		p.noDisplay = true
		return nil
	}
	return err
}

func (p *presentation) drainTicks() {
	for {
		select {
		case seq := <-p.ticks:
			if p.lastTick == 0 || seq <= p.lastTick {
				p.pending++
			} else {
				p.pending += seq - p.lastTick
			}
			p.lastTick = seq
		default:
			return
		}
	}
}

func (p *presentation) drainKeys() {
	for {
		select {
		case ev := <-p.kbd:
			if ev.Press {
				p.handleKey(ev)
			}
		default:
			return
		}
	}
}

func (p *presentation) drainPointer() {
	for {
		select {
		case ev := <-p.ptr:
			p.handlePointer(ev)
		default:
			return
		}
	}
}

var shellKeys = map[hal.KeyCode]shell.Key{
	hal.KeyUp:       shell.KeyUp,
	hal.KeyLeft:     shell.KeyUp,
	hal.KeyDown:     shell.KeyDown,
	hal.KeyRight:    shell.KeyDown,
	hal.KeyPageUp:   shell.KeyPageUp,
	hal.KeyPageDown: shell.KeyPageDown,
	hal.KeyHome:     shell.KeyHome,
	hal.KeyEnd:      shell.KeyEnd,
	hal.KeyEnter:    shell.KeyEnter,
	hal.KeyEscape:   shell.KeyEscape,
	hal.KeyTab:      shell.KeyMenu,
}

func (p *presentation) handleKey(ev hal.KeyEvent) {
	if ev.Code == hal.KeyF1 {
		p.bg.ToggleWireframe()
		return
	}
	if k, ok := shellKeys[ev.Code]; ok {
		p.sh.HandleKey(k)
		return
	}
	switch ev.Rune {
	case 0:
	case 'w', 'W':
		p.bg.ToggleWireframe()
	default:
		p.sh.HandleRune(ev.Rune)
	}
}

func (p *presentation) handlePointer(ev hal.PointerEvent) {
	switch ev.Kind {
	case hal.PointerWheel:
		p.vp.ScrollBy(ev.DY)
	case hal.PointerPress:
		p.px, p.py = ev.X, ev.Y
		if p.noDisplay {
			return
		}
		c := p.sh.Click(ev.X, ev.Y, p.fb.Width(), p.fb.Height())
		p.dragging = c.Kind == shell.ControlNone
	case hal.PointerMove:
		if p.dragging {
			p.bg.Drag(ev.X-p.px, ev.Y-p.py)
		}
		p.px, p.py = ev.X, ev.Y
	case hal.PointerRelease:
		p.dragging = false
	}
}
