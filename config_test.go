package evgfx

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "evgfx.toml")
	require.NoError(t, ioutil.WriteFile(file, []byte(`
[tile]
width = 16
height = 16

[palette]
transparency = "#ff00ff"
skip-first = true

[output]
map = true
`), 0644))

	p, err := LoadProfile(file)
	require.NoError(t, err)

	assert.Equal(t, 16, p.Tile.Width)
	assert.Equal(t, 16, p.Tile.Height)

	// Settings absent from the file keep their defaults
	assert.Equal(t, 8, p.Tile.SubWidth)
	assert.Equal(t, 8, p.Tile.SubHeight)
	assert.Equal(t, 128, p.Palette.AlphaThreshold)

	assert.Equal(t, "#ff00ff", p.Palette.Transparency)
	assert.True(t, p.Palette.SkipFirst)
	assert.True(t, p.Output.Map)

	_, err = p.Config()
	assert.NoError(t, err)
}

func TestLoadProfileMissing(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nonexistent.toml"))
	assert.Error(t, err)
}

func TestProfileConfigBadColor(t *testing.T) {
	p := DefaultProfile()
	p.Palette.Transparency = "not a color"

	_, err := p.Config()
	assert.Error(t, err)
}

func TestProfileConfigNamedColor(t *testing.T) {
	p := DefaultProfile()
	p.Palette.Transparency = "magenta"

	_, err := p.Config()
	assert.NoError(t, err)
}
