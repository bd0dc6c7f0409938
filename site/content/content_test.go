package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Equal(t, 5, c.Len())

	want := []struct {
		id, title, hex string
	}{
		{"overview", "Overview", "#FF4D4D"},
		{"challenge", "The Challenge", "#4D79FF"},
		{"solution", "Our Solution", "#4DFF4D"},
		{"key-figures", "Key Figures", "#FFD84D"},
		{"gallery", "Gallery", "#FF4DFF"},
	}
	for i, w := range want {
		s := c.At(i)
		assert.Equal(t, w.id, s.ID, "section %d", i)
		assert.Equal(t, w.title, s.Title, "section %d", i)
		assert.Equal(t, w.hex, s.Accent.Hex(), "section %d", i)
		assert.NotEmpty(t, s.Body, "section %d", i)
	}

	i, ok := c.Index("key-figures")
	assert.True(t, ok)
	assert.Equal(t, 3, i)
	_, ok = c.Index("nope")
	assert.False(t, ok)
}

func TestAllReturnsCopy(t *testing.T) {
	c := Default()
	all := c.All()
	all[0].Title = "mutated"
	assert.Equal(t, "Overview", c.At(0).Title)
}

func TestNewRejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name     string
		sections []Section
		want     error
	}{
		{"empty", nil, ErrEmptyCatalog},
		{"no id", []Section{{Title: "x"}}, ErrMissingField},
		{"no title", []Section{{ID: "a"}}, ErrMissingField},
		{"duplicate", []Section{{ID: "a", Title: "A"}, {ID: "a", Title: "B"}}, ErrDuplicateID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.sections)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#4D79FF")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0x4D, G: 0x79, B: 0xFF}, c)

	c, err = ParseColor("ff00aa")
	require.NoError(t, err)
	assert.Equal(t, "#FF00AA", c.Hex())

	for _, bad := range []string{"", "#fff", "#GGGGGG", "#1234567"} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, ErrBadColor, bad)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sections.yaml")
	doc := `sections:
  - id: one
    title: One
    color: "#010203"
    body: first
  - id: two
    title: Two
    color: "#0A0B0C"
    body: second
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	assert.Equal(t, "two", c.At(1).ID)
	assert.Equal(t, Color{R: 0x0A, G: 0x0B, B: 0x0C}, c.At(1).Accent)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("sections: []\n"), 0o644))
	_, err = Load(empty)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	noColor := filepath.Join(dir, "nocolor.yaml")
	require.NoError(t, os.WriteFile(noColor, []byte("sections:\n  - id: a\n    title: A\n"), 0o644))
	_, err = Load(noColor)
	assert.ErrorIs(t, err, ErrMissingField)

	badColor := filepath.Join(dir, "badcolor.yaml")
	require.NoError(t, os.WriteFile(badColor, []byte("sections:\n  - id: a\n    title: A\n    color: red\n"), 0o644))
	_, err = Load(badColor)
	assert.ErrorIs(t, err, ErrBadColor)
}
