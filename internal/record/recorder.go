package record

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/san-kum/matrixrain/internal/registry"
	"github.com/san-kum/matrixrain/internal/render"
)

var (
	ErrNoFrames = errors.New("record: no frames captured")
	ErrFormat   = errors.New("record: unsupported output format")
)

// Options configures a Recorder. Zero values select defaults.
type Options struct {
	// Scale divides the surface size before frames are stored.
	Scale int
	// Delay between GIF frames; rounded to 10ms units.
	Delay time.Duration
	// MaxFrames bounds the GIF; older frames are dropped. 0 keeps all.
	MaxFrames int
	// Palette used for GIF frames; defaults to shades of Theme.
	Palette color.Palette
	Theme   registry.Theme
	// StillOnly skips GIF frame capture and keeps only the last frame.
	StillOnly bool
}

// Recorder is a display that captures drawn frames for encoding as a PNG
// still or an animated GIF.
type Recorder struct {
	mu sync.Mutex

	opts   Options
	quant  *quantizer
	frames []*image.Paletted
	last   *image.RGBA
	fps    []string
}

func NewRecorder(opts Options) *Recorder {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Delay <= 0 {
		opts.Delay = 50 * time.Millisecond
	}
	if opts.Theme.Name == "" {
		opts.Theme = registry.ThemeMatrix
	}
	if len(opts.Palette) == 0 {
		opts.Palette = ThemePalette(opts.Theme)
	}
	return &Recorder{opts: opts, quant: newQuantizer(opts.Palette)}
}

func (r *Recorder) ShowFPS(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fps = append(r.fps, text)
}

func (r *Recorder) ShowColor(color.RGBA) {}

func (r *Recorder) Present(frame *image.RGBA) {
	size := frame.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return
	}
	var still *image.RGBA
	if r.opts.Scale > 1 {
		still = render.Downsample(frame, size.X/r.opts.Scale, size.Y/r.opts.Scale)
	} else {
		still = image.NewRGBA(frame.Bounds())
		copy(still.Pix, frame.Pix)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = still
	if r.opts.StillOnly {
		return
	}
	r.frames = append(r.frames, r.quant.paletted(still))
	if r.opts.MaxFrames > 0 && len(r.frames) > r.opts.MaxFrames {
		r.frames = r.frames[len(r.frames)-r.opts.MaxFrames:]
	}
}

// Frames returns the number of GIF frames held.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Last returns the most recent frame, nil before the first.
func (r *Recorder) Last() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Readouts returns every FPS text shown so far.
func (r *Recorder) Readouts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.fps...)
}

// Reset drops captured frames.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = nil
	r.last = nil
}

func (r *Recorder) WritePNG(w io.Writer) error {
	last := r.Last()
	if last == nil {
		return ErrNoFrames
	}
	return png.Encode(w, last)
}

func (r *Recorder) WriteGIF(w io.Writer) error {
	r.mu.Lock()
	frames := append([]*image.Paletted(nil), r.frames...)
	r.mu.Unlock()
	if len(frames) == 0 {
		return ErrNoFrames
	}

	delay := int((r.opts.Delay + 5*time.Millisecond) / (10 * time.Millisecond))
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, max(delay, 1))
	}
	return gif.EncodeAll(w, &anim)
}

// Save writes a PNG or GIF depending on the extension of path.
func (r *Recorder) Save(path string) error {
	var write func(io.Writer) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		write = r.WritePNG
	case ".gif":
		write = r.WriteGIF
	default:
		return fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FormatOf returns "png" or "gif" for path, or ErrFormat.
func FormatOf(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png", ".gif":
		return ext[1:], nil
	default:
		return "", fmt.Errorf("%w: %q", ErrFormat, ext)
	}
}

// ThemePalette builds a 256-entry GIF palette of black plus evenly spaced
// shades of each colour the theme can draw with.
func ThemePalette(t registry.Theme) color.Palette {
	colors := []color.RGBA{t.Color}
	if t.Cycles() {
		colors = t.Palette
	}
	pal := color.Palette{color.RGBA{A: 0xff}}
	per := 255 / len(colors)
	for _, c := range colors {
		for i := 1; i <= per; i++ {
			k := float64(i) / float64(per)
			pal = append(pal, color.RGBA{
				R: uint8(float64(c.R)*k + 0.5),
				G: uint8(float64(c.G)*k + 0.5),
				B: uint8(float64(c.B)*k + 0.5),
				A: 0xff,
			})
		}
	}
	return pal
}

// quantizer maps colours to palette indices, caching each lookup. Rain
// frames reuse a small set of fade levels, so the cache stays small.
type quantizer struct {
	pal   color.Palette
	cache map[color.RGBA]uint8
}

func newQuantizer(pal color.Palette) *quantizer {
	return &quantizer{pal: pal, cache: make(map[color.RGBA]uint8)}
}

func (q *quantizer) paletted(src *image.RGBA) *image.Paletted {
	b := src.Bounds()
	dst := image.NewPaletted(b, q.pal)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.RGBAAt(x, y)
			c.A = 0xff
			idx, ok := q.cache[c]
			if !ok {
				idx = uint8(q.pal.Index(c))
				q.cache[c] = idx
			}
			dst.SetColorIndex(x, y, idx)
		}
	}
	return dst
}
