package convert

import (
	"encoding/binary"
	"io"
)

// Color is an 8-bit RGB triple. Two colors are equal only if all three
// channels match exactly; no tolerance is applied.
type Color struct {
	R, G, B uint8
}

// Palette is an ordered table of unique colors. Entries are only ever
// appended, so an index, once handed out, always refers to the same color.
type Palette struct {
	table []Color
}

// NewPalette returns an empty palette.
func NewPalette() *Palette {
	return &Palette{}
}

// Insert appends c to the palette. It does not check for duplicates; use
// Lookup first if the color may already be present.
func (p *Palette) Insert(c Color) {
	p.table = append(p.table, c)
}

// Lookup returns the index of the first entry equal to c.
func (p *Palette) Lookup(c Color) (int, bool) {
	for i, e := range p.table {
		if e == c {
			return i, true
		}
	}
	return 0, false
}

// Len returns the number of entries in the palette.
func (p *Palette) Len() int {
	return len(p.table)
}

// Color returns the entry at index i.
func (p *Palette) Color(i int) Color {
	return p.table[i]
}

// WriteRGB555 writes the palette to w as little-endian 16-bit words with
// five bits per channel, red in the low bits and bit 15 clear. If skipFirst
// is set, entry 0 is not written; this is for consumers that treat it as a
// software-only placeholder.
func (p *Palette) WriteRGB555(w io.Writer, skipFirst bool) error {
	table := p.table
	if skipFirst && len(table) > 0 {
		table = table[1:]
	}

	var tmp [2]byte
	for _, c := range table {
		binary.LittleEndian.PutUint16(tmp[:], uint16(c.R)>>3|uint16(c.G)>>3<<5|uint16(c.B)>>3<<10)
		if _, err := w.Write(tmp[:]); err != nil {
			return err
		}
	}

	return nil
}
