package evgfx

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, file string) {
	m := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	draw.Draw(m, m.Bounds(), image.NewUniform(color.NRGBA{255, 0, 255, 255}), image.Point{}, draw.Src)
	draw.Draw(m, image.Rect(0, 0, 8, 8), image.NewUniform(color.NRGBA{0, 255, 0, 255}), image.Point{}, draw.Src)

	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, png.Encode(f, m))
}

func discard() *log.Logger {
	return log.New(ioutil.Discard, "", 0)
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()

	profile := DefaultProfile()
	profile.Tile.Width = 16
	profile.Tile.Height = 16
	profile.Palette.Transparency = "magenta"
	profile.Output.Map = true

	conv, err := New(profile, nil, discard())
	require.NoError(t, err)

	file := filepath.Join(dir, "sprite.png")
	writeTestPNG(t, file)

	require.NoError(t, conv.Convert(file))

	tiles, err := ioutil.ReadFile(filepath.Join(dir, "sprite.tiles"))
	require.NoError(t, err)
	assert.Len(t, tiles, 64)

	pal, err := ioutil.ReadFile(filepath.Join(dir, "sprite.pal"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1f, 0x7c, 0xe0, 0x03}, pal)

	tilemap, err := ioutil.ReadFile(filepath.Join(dir, "sprite.map"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01, 0x01, 0x01}, tilemap)
}

func TestConvertNotAnImage(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "garbage.png")
	require.NoError(t, ioutil.WriteFile(file, []byte("not a png"), 0644))

	conv, err := New(DefaultProfile(), nil, discard())
	require.NoError(t, err)

	assert.Error(t, conv.Convert(file))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()

	writeTestPNG(t, filepath.Join(dir, "one.png"))
	writeTestPNG(t, filepath.Join(dir, "two.png"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))
	writeTestPNG(t, filepath.Join(dir, "nested", "three.png"))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644))

	conv, err := New(DefaultProfile(), nil, discard())
	require.NoError(t, err)

	require.NoError(t, conv.Scan(dir))

	for _, file := range []string{
		"one.tiles",
		"one.pal",
		"two.tiles",
		filepath.Join("nested", "three.tiles"),
	} {
		_, err := os.Stat(filepath.Join(dir, file))
		assert.NoError(t, err)
	}

	// No profile output requested, so no map files
	_, err = os.Stat(filepath.Join(dir, "one.map"))
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(dir, "notes.tiles"))
	assert.True(t, os.IsNotExist(err))
}

func TestScanCache(t *testing.T) {
	dir := t.TempDir()

	writeTestPNG(t, filepath.Join(dir, "sprite.png"))

	db, err := NewCacheDB(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer db.Close()

	conv, err := New(DefaultProfile(), db, discard())
	require.NoError(t, err)

	require.NoError(t, conv.Scan(dir))

	// A second scan must skip the unchanged image and not rewrite output
	require.NoError(t, os.Remove(filepath.Join(dir, "sprite.tiles")))
	require.NoError(t, conv.Scan(dir))

	_, err = os.Stat(filepath.Join(dir, "sprite.tiles"))
	assert.True(t, os.IsNotExist(err))
}
