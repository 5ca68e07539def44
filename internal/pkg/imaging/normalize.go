package imaging

import (
	"bytes"
	"image"
	"image/draw"
	"image/jpeg"

	// Decoders for the formats browsers actually produce.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// JPEGQuality is the fixed re-encode quality for stored screenshots.
const JPEGQuality = 60

// Normalize decodes an image byte stream, flattens it onto an opaque RGB
// canvas and re-encodes it as JPEG to bound storage size.
//
// Undecodable input is returned unchanged — storage of the original bytes is
// preferred over losing the upload.
func Normalize(data []byte) []byte {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	bounds := src.Bounds()
	rgb := image.NewRGBA(bounds)
	// White under any transparency, so alpha does not turn black in JPEG.
	draw.Draw(rgb, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(rgb, bounds, src, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, rgb, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return data
	}
	return buf.Bytes()
}
