package convert

import (
	"fmt"
	"io"
	"math"
)

const (
	maxIndex4BPP = 1<<4 - 1
	maxIndex8Bit = math.MaxUint8
)

// OverflowError is returned when a palette or atlas index does not fit the
// output format it is being packed into.
type OverflowError struct {
	// Value is the offending index.
	Value int
	// Limit is the largest index the format can represent.
	Limit int
	// What names the kind of index that overflowed.
	What string
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("convert: %s %d exceeds maximum of %d", e.What, e.Value, e.Limit)
}

// Tile is one hardware tile's worth of palette indices in row-major order.
type Tile struct {
	indexes []int
}

func (t *Tile) equal(o *Tile) bool {
	if len(t.indexes) != len(o.indexes) {
		return false
	}
	for i := range t.indexes {
		if t.indexes[i] != o.indexes[i] {
			return false
		}
	}
	return true
}

// pack4BPP packs pairs of indices into bytes, first index of each pair in
// the low nibble. An unpaired trailing index is ignored; counts are even
// for any practical tile geometry.
func (t *Tile) pack4BPP() ([]byte, error) {
	b := make([]byte, 0, len(t.indexes)>>1)
	for i := 0; i+1 < len(t.indexes); i += 2 {
		lo, hi := t.indexes[i], t.indexes[i+1]
		if lo > maxIndex4BPP {
			return nil, &OverflowError{Value: lo, Limit: maxIndex4BPP, What: "palette index"}
		}
		if hi > maxIndex4BPP {
			return nil, &OverflowError{Value: hi, Limit: maxIndex4BPP, What: "palette index"}
		}
		b = append(b, byte(lo|hi<<4))
	}
	return b, nil
}

// Atlas is a deduplicated, ordered collection of tiles. The index assigned
// to a tile on first insertion never changes.
type Atlas struct {
	tiles []Tile
}

// NewAtlas returns an empty atlas.
func NewAtlas() *Atlas {
	return &Atlas{}
}

// Update returns the atlas index for t, storing it only if no equal tile
// has been seen before.
func (a *Atlas) Update(t Tile) int {
	for i := range a.tiles {
		if a.tiles[i].equal(&t) {
			return i
		}
	}
	a.tiles = append(a.tiles, t)
	return len(a.tiles) - 1
}

// Len returns the number of unique tiles stored.
func (a *Atlas) Len() int {
	return len(a.tiles)
}

// Write4BPP writes every tile to w in atlas order at 4 bits per pixel, two
// palette indices per byte with the first of each pair in the low nibble.
// An index greater than 15 cannot be represented and returns an
// OverflowError. Tiles hold an even number of indices for any practical
// geometry; should a tile hold an odd number, the final unpaired index is
// not written.
func (a *Atlas) Write4BPP(w io.Writer) error {
	for i := range a.tiles {
		b, err := a.tiles[i].pack4BPP()
		if err != nil {
			return err
		}
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// Map records, row by row, which atlas index each visited sub-tile
// produced.
type Map struct {
	rows [][]int
}

// NewMap returns an empty tile map.
func NewMap() *Map {
	return &Map{}
}

func (m *Map) addRow() {
	m.rows = append(m.rows, nil)
}

func (m *Map) push(index int) {
	m.rows[len(m.rows)-1] = append(m.rows[len(m.rows)-1], index)
}

// Len returns the total number of map entries across all rows.
func (m *Map) Len() (n int) {
	for _, row := range m.rows {
		n += len(row)
	}
	return
}

// Write8Bit writes one byte per map entry to w, flattening rows in order.
// An atlas index greater than 255 cannot be represented and returns an
// OverflowError.
func (m *Map) Write8Bit(w io.Writer) error {
	for _, row := range m.rows {
		for _, index := range row {
			if index > maxIndex8Bit {
				return &OverflowError{Value: index, Limit: maxIndex8Bit, What: "tile index"}
			}
			if _, err := w.Write([]byte{byte(index)}); err != nil {
				return err
			}
		}
	}
	return nil
}
