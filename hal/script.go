package hal

import (
	"fmt"
	"strconv"
	"strings"
)

// ScriptEvent is an input event injected by the headless runner once Step
// frames have run.
type ScriptEvent struct {
	Step    uint64
	Key     *KeyEvent
	Pointer *PointerEvent
}

var scriptKeys = map[string]KeyCode{
	"up":    KeyUp,
	"down":  KeyDown,
	"left":  KeyLeft,
	"right": KeyRight,
	"pgup":  KeyPageUp,
	"pgdn":  KeyPageDown,
	"home":  KeyHome,
	"end":   KeyEnd,
	"enter": KeyEnter,
	"esc":   KeyEscape,
	"tab":   KeyTab,
}

// ParseScript parses lines of the form
//
//	<step> key <name>
//	<step> rune <char>
//	<step> wheel <dy>
//	<step> click <x> <y>
//	<step> drag <x0> <y0> <x1> <y1>
//
// Blank lines and lines starting with # are ignored.
func ParseScript(lines []string) ([]ScriptEvent, error) {
	var out []ScriptEvent
	for n, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		evs, err := parseScriptLine(line)
		if err != nil {
			return nil, fmt.Errorf("script line %d: %w", n+1, err)
		}
		out = append(out, evs...)
	}
	return out, nil
}

func parseScriptLine(line string) ([]ScriptEvent, error) {
	f := strings.Fields(line)
	if len(f) < 3 {
		return nil, fmt.Errorf("want <step> <verb> <args>, got %q", line)
	}
	step, err := strconv.ParseUint(f[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad step %q", f[0])
	}
	ints := func(args []string, want int) ([]int, error) {
		if len(args) != want {
			return nil, fmt.Errorf("%s wants %d arguments", f[1], want)
		}
		v := make([]int, want)
		for i, a := range args {
			if v[i], err = strconv.Atoi(a); err != nil {
				return nil, fmt.Errorf("bad coordinate %q", a)
			}
		}
		return v, nil
	}
	key := func(ev KeyEvent) ScriptEvent { return ScriptEvent{Step: step, Key: &ev} }
	ptr := func(ev PointerEvent) ScriptEvent { return ScriptEvent{Step: step, Pointer: &ev} }

	switch f[1] {
	case "key":
		code, ok := scriptKeys[f[2]]
		if !ok {
			return nil, fmt.Errorf("unknown key %q", f[2])
		}
		return []ScriptEvent{key(KeyEvent{Code: code, Press: true}), key(KeyEvent{Code: code})}, nil
	case "rune":
		r := []rune(f[2])
		if len(r) != 1 {
			return nil, fmt.Errorf("rune wants one character, got %q", f[2])
		}
		return []ScriptEvent{key(KeyEvent{Press: true, Rune: r[0]})}, nil
	case "wheel":
		dy, err := strconv.ParseFloat(f[2], 64)
		if err != nil {
			return nil, fmt.Errorf("bad wheel delta %q", f[2])
		}
		return []ScriptEvent{ptr(PointerEvent{Kind: PointerWheel, DY: dy})}, nil
	case "click":
		v, err := ints(f[2:], 2)
		if err != nil {
			return nil, err
		}
		return []ScriptEvent{
			ptr(PointerEvent{Kind: PointerMove, X: v[0], Y: v[1]}),
			ptr(PointerEvent{Kind: PointerPress, X: v[0], Y: v[1]}),
			ptr(PointerEvent{Kind: PointerRelease, X: v[0], Y: v[1]}),
		}, nil
	case "drag":
		v, err := ints(f[2:], 4)
		if err != nil {
			return nil, err
		}
		return []ScriptEvent{
			ptr(PointerEvent{Kind: PointerPress, X: v[0], Y: v[1]}),
			ptr(PointerEvent{Kind: PointerMove, X: v[2], Y: v[3]}),
			ptr(PointerEvent{Kind: PointerRelease, X: v[2], Y: v[3]}),
		}, nil
	}
	return nil, fmt.Errorf("unknown verb %q", f[1])
}
