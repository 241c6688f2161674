package x11

import (
	"image"

	"github.com/BurntSushi/xgbutil"
)

// putImageHeader is the size of a PutImage request without its data.
const putImageHeader = 28

// rowsPerRequest returns how many rows of a width-pixel wide 32bpp image fit
// in one PutImage request of at most maxReq bytes. It is always at least 1.
func rowsPerRequest(width, maxReq int) int {
	if width <= 0 {
		return 1
	}
	rows := (maxReq - putImageHeader) / (width * 4)
	if rows < 1 {
		return 1
	}
	return rows
}

// maxRequestBytes is the PutImage budget used when uploading frames.
func maxRequestBytes() int {
	return xgbutil.MaxReqSize
}

// toZPixmap converts r within src into the little-endian 32bpp ZPixmap
// layout used by depth 24 and 32 TrueColor visuals, reusing dst when it is
// large enough.
func toZPixmap(dst []byte, src *image.RGBA, r image.Rectangle) []byte {
	r = r.Intersect(src.Bounds())
	n := r.Dx() * r.Dy() * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]

	o := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := src.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			dst[o+0] = src.Pix[i+2]
			dst[o+1] = src.Pix[i+1]
			dst[o+2] = src.Pix[i+0]
			dst[o+3] = 0xff
			i += 4
			o += 4
		}
	}
	return dst
}

// packRGB returns the 0xRRGGBB pixel value for a TrueColor visual.
func packRGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}
