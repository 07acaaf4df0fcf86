// Package imaging bounds raster payloads before they reach a vision call.
// Uncompressed scans routinely exceed provider payload limits, and holding
// more than one decoded image at a time risks exhausting the process under
// the tight memory ceilings the pipeline runs with.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"os"

	_ "image/gif"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

// Options bound the normalized payload.
type Options struct {
	MaxSizeKB    int // encoded-size budget, default 500
	MaxDimension int // longest edge in pixels, default 1500
}

const (
	startQuality = 85
	minQuality   = 30
	qualityStep  = 10
)

func (o Options) withDefaults() Options {
	if o.MaxSizeKB <= 0 {
		o.MaxSizeKB = 500
	}
	if o.MaxDimension <= 0 {
		o.MaxDimension = 1500
	}
	return o
}

// Normalize reads an image file, converts it to opaque RGB, downscales it
// proportionally when the longest edge exceeds the dimension bound, and
// re-encodes it as JPEG, stepping the quality down until the byte budget is
// met or the quality floor is hit. It returns the base64 payload and its mime
// type. Callers must treat an error as non-fatal and fall back to sending the
// unmodified original file.
func Normalize(path string, opts Options) (string, string, error) {
	opts = opts.withDefaults()

	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("open image: %w", err)
	}
	src, _, err := image.Decode(f)
	closeErr := f.Close()
	if err != nil {
		return "", "", fmt.Errorf("decode image: %w", err)
	}
	if closeErr != nil {
		return "", "", closeErr
	}

	// Recognition models expect opaque RGB; flattening also drops any alpha
	// or palette channel. Downscale in the same pass when needed.
	rgb := flatten(src, opts.MaxDimension)

	var buf bytes.Buffer
	quality := startQuality
	if err := jpeg.Encode(&buf, rgb, &jpeg.Options{Quality: quality}); err != nil {
		return "", "", fmt.Errorf("encode jpeg: %w", err)
	}
	for buf.Len() > opts.MaxSizeKB*1024 && quality > minQuality {
		quality -= qualityStep
		buf.Reset()
		if err := jpeg.Encode(&buf, rgb, &jpeg.Options{Quality: quality}); err != nil {
			return "", "", fmt.Errorf("encode jpeg: %w", err)
		}
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), "image/jpeg", nil
}

func flatten(src image.Image, maxDim int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	longest := w
	if h > longest {
		longest = h
	}
	if longest > maxDim {
		ratio := float64(maxDim) / float64(longest)
		w = int(float64(w) * ratio)
		h = int(float64(h) * ratio)
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}
