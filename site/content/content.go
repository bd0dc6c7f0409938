// Package content holds the ordered, immutable list of presentation sections.
//
// The default catalog is compiled into the binary from sections.yaml. Hosts may
// load an alternative YAML file at startup; any problem with it is reported
// as a configuration error before the first frame is drawn.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyCatalog = errors.New("content: catalog has no sections")
	ErrDuplicateID  = errors.New("content: duplicate section id")
	ErrMissingField = errors.New("content: missing required field")
	ErrBadColor     = errors.New("content: malformed color")
)

//go:embed sections.yaml
var defaultYAML []byte

// Color is an opaque 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// ParseColor parses "#RRGGBB" (the leading '#' is optional).
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func (c Color) Hex() string { return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B) }

func (c Color) RGBA8() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF} }

// Section is one full-viewport narrative panel.
type Section struct {
	ID     string
	Title  string
	Accent Color
	Body   string
}

// Catalog is an ordered sequence of sections. It is never mutated after
// construction and is safe to share.
type Catalog struct {
	sections []Section
}

// New validates sections and returns a catalog holding a private copy.
func New(sections []Section) (*Catalog, error) {
	if len(sections) == 0 {
		return nil, ErrEmptyCatalog
	}
	seen := make(map[string]int, len(sections))
	for i, s := range sections {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: section %d has no id", ErrMissingField, i)
		}
		if s.Title == "" {
			return nil, fmt.Errorf("%w: section %q has no title", ErrMissingField, s.ID)
		}
		if j, ok := seen[s.ID]; ok {
			return nil, fmt.Errorf("%w: %q at %d and %d", ErrDuplicateID, s.ID, j, i)
		}
		seen[s.ID] = i
	}
	own := make([]Section, len(sections))
	copy(own, sections)
	return &Catalog{sections: own}, nil
}

type fileSection struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Color string `yaml:"color"`
	Body  string `yaml:"body"`
}

type fileCatalog struct {
	Sections []fileSection `yaml:"sections"`
}

// Parse decodes a YAML catalog document.
func Parse(b []byte) (*Catalog, error) {
	var doc fileCatalog
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("content: decode yaml: %w", err)
	}
	sections := make([]Section, 0, len(doc.Sections))
	for i, fs := range doc.Sections {
		if fs.Color == "" {
			return nil, fmt.Errorf("%w: section %d has no color", ErrMissingField, i)
		}
		c, err := ParseColor(fs.Color)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", fs.ID, err)
		}
		sections = append(sections, Section{
			ID:     fs.ID,
			Title:  fs.Title,
			Accent: c,
			Body:   strings.TrimSpace(fs.Body),
		})
	}
	return New(sections)
}

// Load reads a YAML catalog from path.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Default returns the catalog bundled with the binary.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of sections.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.sections)
}

// At returns section i. It panics if i is out of range, like slice indexing.
func (c *Catalog) At(i int) Section { return c.sections[i] }

// All returns a copy of every section in declaration order.
func (c *Catalog) All() []Section {
	if c == nil {
		return nil
	}
	out := make([]Section, len(c.sections))
	copy(out, c.sections)
	return out
}

// Index returns the position of the section with the given id.
func (c *Catalog) Index(id string) (int, bool) {
	if c == nil {
		return 0, false
	}
	for i, s := range c.sections {
		if s.ID == id {
			return i, true
		}
	}
	return 0, false
}
