package assets

import (
	"bytes"
	"errors"
	"image"
	"runtime"

	// Decoders used by image.Decode
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/bloeys/nrend/gpu"
	"github.com/mandykoh/prism"
)

type TextureLoadOptions struct {
	// NoFlip keeps the first row of the image as the first row of the texture.
	// By default images are flipped so UV (0,0) is the bottom left, as OpenGL expects.
	NoFlip bool
	IsSrgb bool
}

// DecodeImage decodes png, jpeg, bmp or webp data into tightly packed 8-bit RGBA (non premultiplied) pixels
func DecodeImage(data []byte, opts TextureLoadOptions) (pixels []byte, width, height int32, err error) {

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, errors.New("failed to decode image. Err: " + err.Error())
	}

	nrgbaImg := prism.ConvertImageToNRGBA(img, runtime.NumCPU())

	bounds := nrgbaImg.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, 0, 0, errors.New("image has no pixels")
	}

	rowSize := w * 4
	pixels = make([]byte, rowSize*h)
	for y := 0; y < h; y++ {

		srcStart := y * nrgbaImg.Stride
		src := nrgbaImg.Pix[srcStart : srcStart+rowSize]

		dstY := y
		if !opts.NoFlip {
			dstY = h - 1 - y
		}

		copy(pixels[dstY*rowSize:], src)
	}

	return pixels, int32(w), int32(h), nil
}

// LoadTexture decodes an image and uploads it as a 2D RGBA texture
func LoadTexture(ctx gpu.Context, data []byte, opts TextureLoadOptions) (gpu.Handle, error) {

	pixels, w, h, err := DecodeImage(data, opts)
	if err != nil {
		return 0, err
	}

	return ctx.CreateTexture2D(w, h, pixels, opts.IsSrgb), nil
}
