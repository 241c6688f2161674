// Package win32 shows the splash as a topmost layered popup window using
// user32 and gdi32.
package win32

import "image"

// copyBGRA converts r within src into dst, a top-down 32bpp DIB of the same
// size as src. Pixels outside r are left untouched.
func copyBGRA(dst []byte, src *image.RGBA, r image.Rectangle) {
	b := src.Bounds()
	r = r.Intersect(b)
	stride := b.Dx() * 4
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := src.PixOffset(r.Min.X, y)
		o := (y-b.Min.Y)*stride + (r.Min.X-b.Min.X)*4
		for x := r.Min.X; x < r.Max.X; x++ {
			dst[o+0] = src.Pix[i+2]
			dst[o+1] = src.Pix[i+1]
			dst[o+2] = src.Pix[i+0]
			dst[o+3] = 0
			i += 4
			o += 4
		}
	}
}
