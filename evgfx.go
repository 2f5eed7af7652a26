/*
Package evgfx converts images into the binary tile, palette and map formats
consumed by tile-based graphics hardware.

The conversion engine lives in the convert package; this package wires it to
the filesystem: single image conversion, recursive directory scans and an
optional cache database used to skip inputs that have not changed since the
last run.
*/
package evgfx

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/evgfx/convert"
)

// Converter converts image files on disk according to a Profile.
type Converter struct {
	profile *Profile
	config  *convert.Config
	db      *CacheDB
	logger  *log.Logger
}

// New returns a Converter for the given profile. The cache database may be
// nil, in which case every image found by Scan is converted unconditionally.
func New(profile *Profile, db *CacheDB, logger *log.Logger) (*Converter, error) {
	config, err := profile.Config()
	if err != nil {
		return nil, err
	}

	return &Converter{
		profile: profile,
		config:  config,
		db:      db,
		logger:  logger,
	}, nil
}

// Convert decodes the image at path and writes the tile atlas, palette and,
// if the profile asks for one, the tile map alongside it with .tiles, .pal
// and .map extensions. A failed write leaves any partially written file
// behind.
func (c *Converter) Convert(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	palette, atlas, tilemap, err := c.config.ConvertImage(m)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(path, filepath.Ext(path))

	if err := writeFile(base+".tiles", atlas.Write4BPP); err != nil {
		return err
	}

	if err := writeFile(base+".pal", func(w io.Writer) error {
		return palette.WriteRGB555(w, c.profile.Palette.SkipFirst)
	}); err != nil {
		return err
	}

	if c.profile.Output.Map {
		if err := writeFile(base+".map", tilemap.Write8Bit); err != nil {
			return err
		}
	}

	c.logger.Printf("converted \"%s\": %d colors, %d tiles, %d map entries\n", path, palette.Len(), atlas.Len(), tilemap.Len())

	return nil
}

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return encode(f)
}
