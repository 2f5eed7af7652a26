/*
Package convert implements the image-to-tile conversion engine.

An image is partitioned into a grid of metatile cells which are further
subdivided into hardware-sized tiles. Every pixel resolves to an index in a
shared palette, with new colors appended in scan order so that repeated runs
over the same image produce identical output. Identical tiles are stored
once in an atlas and a map records which atlas entry each cell produced.

Three binary encodings are provided: the palette as packed little-endian
RGB555 words, the atlas as 4 bits per pixel with two indices per byte, and
the map as one byte per entry.
*/
package convert

import (
	"errors"
	"image"
	"image/color"
)

const defaultAlphaThreshold = 128

// Config holds the parameters for converting images. A single Config can be
// reused across any number of images; it carries no per-image state.
type Config struct {
	width, height       int
	subWidth, subHeight int
	transparency        *Color
	alphaThreshold      uint8
}

// NewConfig returns a Config using 8 by 8 metatiles, 8 by 8 hardware tiles,
// no transparency color and an alpha threshold of 128.
func NewConfig() *Config {
	return &Config{
		width:          8,
		height:         8,
		subWidth:       8,
		subHeight:      8,
		alphaThreshold: defaultAlphaThreshold,
	}
}

// WithTileSize sets the metatile cell size in pixels.
func (c *Config) WithTileSize(width, height int) *Config {
	c.width, c.height = width, height
	return c
}

// WithSubTileSize sets the hardware tile size in pixels.
func (c *Config) WithSubTileSize(width, height int) *Config {
	c.subWidth, c.subHeight = width, height
	return c
}

// WithTransparencyColor reserves palette index 0 for the given color, even
// if no pixel in the image uses it.
func (c *Config) WithTransparencyColor(r, g, b uint8) *Config {
	c.transparency = &Color{r, g, b}
	return c
}

// WithAlphaThreshold sets the alpha value below which a pixel counts as
// transparent. Such pixels always resolve to palette index 0, whether or not
// a transparency color is configured; without one they alias whatever color
// was assigned index 0 first.
func (c *Config) WithAlphaThreshold(threshold uint8) *Config {
	c.alphaThreshold = threshold
	return c
}

var errCellSize = errors.New("convert: tile and sub-tile dimensions must be positive")

// ConvertImage scans m and returns its palette, deduplicated tile atlas and
// tile map. Metatile cells are visited left to right, top to bottom, each
// cell subdivided into hardware tiles in the same order, and the map gains
// a new row for every sub-tile row entered.
//
// Image dimensions that are not multiples of the configured cell sizes are
// not validated; pixels outside the bounds are whatever m returns for them,
// which for the standard library image types is the zero color.
func (c *Config) ConvertImage(m image.Image) (*Palette, *Atlas, *Map, error) {
	if c.width <= 0 || c.height <= 0 || c.subWidth <= 0 || c.subHeight <= 0 {
		return nil, nil, nil, errCellSize
	}

	palette := NewPalette()
	if c.transparency != nil {
		palette.Insert(*c.transparency)
	}

	atlas := NewAtlas()
	tilemap := NewMap()

	b := m.Bounds()
	for tileY := b.Min.Y; tileY < b.Max.Y; tileY += c.height {
		for tileX := b.Min.X; tileX < b.Max.X; tileX += c.width {
			for subY := tileY; subY < tileY+c.height; subY += c.subHeight {
				tilemap.addRow()
				for subX := tileX; subX < tileX+c.width; subX += c.subWidth {
					tile := c.buildTile(m, subX, subY, palette)
					tilemap.push(atlas.Update(tile))
				}
			}
		}
	}

	return palette, atlas, tilemap, nil
}

// buildTile resolves one sub-tile region to palette indices in row-major
// order, appending any colors not yet present in the palette.
func (c *Config) buildTile(m image.Image, x0, y0 int, palette *Palette) Tile {
	t := Tile{indexes: make([]int, 0, c.subWidth*c.subHeight)}
	for y := y0; y < y0+c.subHeight; y++ {
		for x := x0; x < x0+c.subWidth; x++ {
			// Straight, not premultiplied, channels; a semi-transparent
			// pixel keeps its original color
			p := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			if p.A < c.alphaThreshold {
				t.indexes = append(t.indexes, 0)
				continue
			}

			pixel := Color{p.R, p.G, p.B}
			i, ok := palette.Lookup(pixel)
			if !ok {
				i = palette.Len()
				palette.Insert(pixel)
			}
			t.indexes = append(t.indexes, i)
		}
	}
	return t
}
