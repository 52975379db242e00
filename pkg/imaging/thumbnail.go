package imaging

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

const jpegQuality = 85

// Thumbnail decodes a jpeg or png and returns a jpeg scaled down so that its
// width does not exceed maxWidth. Images already narrow enough are re-encoded
// unscaled.
func Thumbnail(data []byte, maxWidth int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	if bounds.Dx() > maxWidth {
		ratio := float64(maxWidth) / float64(bounds.Dx())
		height := int(float64(bounds.Dy()) * ratio)
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
