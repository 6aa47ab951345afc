package render

import (
	"bytes"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/san-kum/matrixrain/internal/grid"
	"github.com/san-kum/matrixrain/internal/registry"
)

func testFace(t *testing.T) *Face {
	t.Helper()
	face, err := LoadFace("", 20)
	if err != nil {
		t.Fatalf("load go mono: %v", err)
	}
	return face
}

func litPixels(img *image.RGBA) int {
	n := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 {
			n++
		}
	}
	return n
}

func TestAlphabets(t *testing.T) {
	if len(Katakana.Runes) != AlphabetSize || len(Latin.Runes) != AlphabetSize {
		t.Fatalf("alphabets must have %d runes", AlphabetSize)
	}
	if Katakana.Runes[0] != 0x30A0 || Katakana.Runes[95] != 0x30FF {
		t.Errorf("katakana range wrong: %U..%U", Katakana.Runes[0], Katakana.Runes[95])
	}
	if _, err := ParseAlphabet("klingon"); err == nil {
		t.Error("expected error for unknown alphabet")
	}
	a, err := ParseAlphabet("Latin")
	if err != nil || a.Name != "latin" {
		t.Errorf("ParseAlphabet(Latin) = %v, %v", a.Name, err)
	}
}

func TestGoMonoCoversLatin(t *testing.T) {
	face := testFace(t)
	if !face.Covers(Latin.Runes) {
		t.Error("go mono should cover the latin alphabet")
	}
}

func TestNew_AlphabetFallback(t *testing.T) {
	face := testFace(t)
	r := New(face, Katakana, nil)
	if face.Covers(Katakana.Runes) {
		if r.Alphabet().Name != "katakana" {
			t.Error("covered alphabet should be kept")
		}
	} else if r.Alphabet().Name != "latin" {
		t.Errorf("expected latin fallback, got %s", r.Alphabet().Name)
	}
}

func TestBasicFaceFallback(t *testing.T) {
	r := New(nil, Latin, nil)
	if r.face.Name != "basicfont" {
		t.Errorf("nil face should fall back to basicfont, got %s", r.face.Name)
	}
}

func TestLoadFace_MissingFile(t *testing.T) {
	if _, err := LoadFace("/nonexistent/font.ttf", 20); err == nil {
		t.Error("expected error for missing font file")
	}
}

func TestRenderFrame(t *testing.T) {
	r := New(testFace(t), Latin, nil)
	g := grid.New(20)
	g.Rebuild(1200, 200, registry.High)
	dst := image.NewRGBA(image.Rect(0, 0, 1200, 200))
	rnd := rand.New(rand.NewSource(1))

	r.RenderFrame(dst, g, registry.Quality(registry.High), registry.ThemeMatrix.Color, rnd)

	for i, d := range g.Drops {
		if d != 2 {
			t.Fatalf("column %d at row %d after one frame, want 2", i, d)
		}
	}
	if litPixels(dst) == 0 {
		t.Fatal("expected glyph pixels on the surface")
	}
	if !bytes.Equal(dst.Pix, r.Buffer().Pix) {
		t.Error("surface should be a copy of the buffer")
	}

	// Matrix green: no red or blue in any pixel.
	for i := 0; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] != 0 || dst.Pix[i+2] != 0 {
			t.Fatalf("unexpected colour at byte %d: %v", i, dst.Pix[i:i+4])
		}
	}
}

func TestRenderFrame_TrailFades(t *testing.T) {
	r := New(testFace(t), Latin, nil)
	dst := image.NewRGBA(image.Rect(0, 0, 200, 100))
	rnd := rand.New(rand.NewSource(3))

	g := grid.New(20)
	g.Rebuild(200, 100, registry.High)
	r.RenderFrame(dst, g, registry.Quality(registry.High), color.RGBA{G: 0xff, A: 0xff}, rnd)

	brightest := 0
	idx := 0
	for i := 1; i < len(dst.Pix); i += 4 {
		if int(dst.Pix[i]) > brightest {
			brightest, idx = int(dst.Pix[i]), i
		}
	}
	if brightest == 0 {
		t.Fatal("nothing drawn")
	}

	// A grid narrower than one column draws nothing, leaving only the fade.
	empty := grid.New(20)
	empty.Rebuild(10, 100, registry.High)
	r.RenderFrame(dst, empty, registry.Quality(registry.Low), color.RGBA{G: 0xff, A: 0xff}, rnd)

	faded := int(dst.Pix[idx])
	if faded >= brightest || faded == 0 {
		t.Errorf("expected partial fade from %d, got %d", brightest, faded)
	}
}

func TestRenderFrame_Deterministic(t *testing.T) {
	face := testFace(t)
	render := func() []byte {
		r := New(face, Latin, nil)
		g := grid.New(20)
		g.Rebuild(400, 300, registry.Medium)
		dst := image.NewRGBA(image.Rect(0, 0, 400, 300))
		rnd := rand.New(rand.NewSource(42))
		for i := 0; i < 30; i++ {
			r.RenderFrame(dst, g, registry.Quality(registry.Medium), registry.ThemeIce.Color, rnd)
		}
		return dst.Pix
	}
	if !bytes.Equal(render(), render()) {
		t.Error("same seed should render identical frames")
	}
}

func TestRenderFrame_BufferFollowsSurface(t *testing.T) {
	r := New(testFace(t), Latin, nil)
	rnd := rand.New(rand.NewSource(1))
	g := grid.New(20)

	small := image.NewRGBA(image.Rect(0, 0, 100, 50))
	g.Rebuild(100, 50, registry.High)
	r.RenderFrame(small, g, registry.Quality(registry.High), registry.ThemeMatrix.Color, rnd)
	first := r.Buffer()

	r.RenderFrame(small, g, registry.Quality(registry.High), registry.ThemeMatrix.Color, rnd)
	if r.Buffer() != first {
		t.Error("buffer should be reused while the size is unchanged")
	}

	large := image.NewRGBA(image.Rect(0, 0, 300, 120))
	g.Rebuild(300, 120, registry.High)
	r.RenderFrame(large, g, registry.Quality(registry.High), registry.ThemeMatrix.Color, rnd)
	if r.Buffer() == first || r.Buffer().Bounds().Dx() != 300 {
		t.Error("buffer should be recreated at the new size")
	}
}

func TestBlitAndDownsample(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}

	dst := image.NewRGBA(image.Rect(0, 0, 80, 40))
	Blit(dst, src)
	if dst.RGBAAt(79, 39) != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Error("blit should cover the whole destination")
	}

	small := Downsample(src, 4, 2)
	if small.Bounds().Dx() != 4 || small.Bounds().Dy() != 2 {
		t.Errorf("unexpected downsample size %v", small.Bounds())
	}
	if small.RGBAAt(0, 0).G == 0 {
		t.Error("downsample lost colour")
	}
}
