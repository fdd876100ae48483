package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/bloeys/nrend/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2x2 image, top row red/green, bottom row blue/white
func testPng(t *testing.T) []byte {

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 128})

	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {

	data := testPng(t)

	pixels, w, h, err := DecodeImage(data, TextureLoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), w)
	assert.Equal(t, int32(2), h)

	// Flipped, so the bottom row comes first
	assert.Equal(t, []byte{
		0, 0, 255, 255, 255, 255, 255, 128,
		255, 0, 0, 255, 0, 255, 0, 255,
	}, pixels)

	pixels, _, _, err = DecodeImage(data, TextureLoadOptions{NoFlip: true})
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 255, 0, 255}, pixels[:8])

	_, _, _, err = DecodeImage([]byte("not an image"), TextureLoadOptions{})
	assert.Error(t, err)
}

func TestLoadTexture(t *testing.T) {

	rec := gputest.NewRecorder()

	tex, err := LoadTexture(rec, testPng(t), TextureLoadOptions{IsSrgb: true})
	require.NoError(t, err)
	assert.NotZero(t, tex)
	assert.Len(t, rec.Textures[tex], 16)

	c, ok := rec.Last("CreateTexture2D")
	require.True(t, ok)
	assert.Equal(t, []any{tex, int32(2), int32(2), true}, c.Args)
}
