package render

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Blit scales src onto the whole of dst with nearest-neighbour sampling, which
// keeps glyph edges hard on framebuffers whose size differs from the surface.
func Blit(dst draw.Image, src image.Image) {
	if dst.Bounds().Size() == src.Bounds().Size() {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return
	}
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
}

// Downsample shrinks src to w x h with bilinear filtering so thin glyph strokes
// still contribute colour to coarse outputs such as terminal cells.
func Downsample(src image.Image, w, h int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
