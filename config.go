package evgfx

import (
	"io/ioutil"

	"github.com/bodgit/evgfx/convert"
	"github.com/mazznoer/csscolorparser"
	"github.com/pelletier/go-toml"
)

// Profile describes one conversion: the cell geometry, palette handling and
// which artifacts to emit. Profiles are usually loaded from a TOML file:
//
//	[tile]
//	width = 16
//	height = 16
//	sub-width = 8
//	sub-height = 8
//
//	[palette]
//	transparency = "#ff00ff"
//	alpha-threshold = 128
//	skip-first = true
//
//	[output]
//	map = true
//
// Colors accept any CSS notation, so "magenta" works as well as "#ff00ff".
type Profile struct {
	Tile struct {
		Width     int `toml:"width"`
		Height    int `toml:"height"`
		SubWidth  int `toml:"sub-width"`
		SubHeight int `toml:"sub-height"`
	} `toml:"tile"`
	Palette struct {
		Transparency   string `toml:"transparency"`
		AlphaThreshold int    `toml:"alpha-threshold"`
		SkipFirst      bool   `toml:"skip-first"`
	} `toml:"palette"`
	Output struct {
		Map bool `toml:"map"`
	} `toml:"output"`
}

// DefaultProfile returns a profile matching the convert package defaults:
// 8 by 8 cells and sub-cells, no transparency and an alpha threshold of 128.
func DefaultProfile() *Profile {
	p := new(Profile)
	p.Tile.Width = 8
	p.Tile.Height = 8
	p.Tile.SubWidth = 8
	p.Tile.SubHeight = 8
	p.Palette.AlphaThreshold = 128
	return p
}

// LoadProfile reads a TOML profile from file. Settings absent from the
// document keep their defaults.
func LoadProfile(file string) (*Profile, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}

	p := DefaultProfile()
	if err := toml.Unmarshal(b, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Config translates the profile into a conversion Config.
func (p *Profile) Config() (*convert.Config, error) {
	c := convert.NewConfig().
		WithTileSize(p.Tile.Width, p.Tile.Height).
		WithSubTileSize(p.Tile.SubWidth, p.Tile.SubHeight).
		WithAlphaThreshold(uint8(p.Palette.AlphaThreshold))

	if p.Palette.Transparency != "" {
		t, err := csscolorparser.Parse(p.Palette.Transparency)
		if err != nil {
			return nil, err
		}
		r, g, b, _ := t.RGBA()
		c = c.WithTransparencyColor(uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}

	return c, nil
}
