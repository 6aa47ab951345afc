package gui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/matrixrain/internal/engine"
	"github.com/san-kum/matrixrain/internal/logging"
	"github.com/san-kum/matrixrain/internal/registry"
)

var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColPanel   = rl.NewColor(10, 10, 10, 200)
	ColText    = rl.NewColor(180, 180, 180, 255)
	ColTextDim = rl.NewColor(90, 90, 90, 255)
)

// Options configures the window. Zero values select defaults.
type Options struct {
	Width     int
	Height    int
	Title     string
	TargetFPS int
	Logger    logging.Logger
}

// App hosts the engine in a resizable raylib window. It is also the
// engine's display; everything runs on the window's thread.
type App struct {
	engine *engine.Engine
	logger logging.Logger

	frame   *image.RGBA
	dirty   bool
	fps     string
	color   color.RGBA
	message string

	tex   rl.Texture2D
	texW  int
	texH  int
	start float64
}

func (a *App) ShowFPS(text string)       { a.fps = text }
func (a *App) ShowColor(c color.RGBA)    { a.color = c }
func (a *App) Present(frame *image.RGBA) { a.frame, a.dirty = frame, true }

func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	rl.SetTargetFPS(int32(opts.TargetFPS))
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed, q or Esc is pressed,
// or ctx ends.
func Run(ctx context.Context, eopts engine.Options, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.Title == "" {
		opts.Title = "matrixrain"
	}
	if opts.TargetFPS <= 0 {
		opts.TargetFPS = 60
	}
	initWindow(opts)
	defer rl.CloseWindow()

	a := &App{logger: logging.OrNoop(opts.Logger), fps: "FPS: --"}
	eopts.Width, eopts.Height = rl.GetScreenWidth(), rl.GetScreenHeight()
	if eopts.Display != nil {
		eopts.Display = engine.MultiDisplay{a, eopts.Display}
	} else {
		eopts.Display = a
	}
	if eopts.Logger == nil {
		eopts.Logger = a.logger
	}
	a.engine = engine.New(eopts)
	a.logger.Infof("gui", "window %dx%d", eopts.Width, eopts.Height)

	a.RunLoop(ctx)
	if a.tex.ID != 0 {
		rl.UnloadTexture(a.tex)
	}
	return nil
}

func (a *App) RunLoop(ctx context.Context) {
	a.start = rl.GetTime()
	for !rl.WindowShouldClose() && ctx.Err() == nil {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update feeds input and one frame callback to the engine. It returns false
// when the user asked to quit.
func (a *App) Update() bool {
	if rl.IsWindowResized() {
		a.engine.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}
	for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
		action := engine.RuneAction(rune(ch))
		if action == engine.ActionQuit {
			return false
		}
		if text := a.engine.Apply(action); text != "" {
			a.message = text
		}
	}

	ts := time.Duration((rl.GetTime() - a.start) * float64(time.Second))
	a.engine.Tick(ts)
	return true
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	if a.frame != nil {
		a.upload()
		rl.DrawTexture(a.tex, 0, 0, rl.White)
	}
	a.DrawHUD()
	rl.EndDrawing()
}

// upload copies the latest frame to the GPU, recreating the texture when the
// surface size changed.
func (a *App) upload() {
	size := a.frame.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return
	}
	if a.tex.ID == 0 || a.texW != size.X || a.texH != size.Y {
		if a.tex.ID != 0 {
			rl.UnloadTexture(a.tex)
		}
		img := rl.NewImageFromImage(a.frame)
		a.tex = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		a.texW, a.texH = size.X, size.Y
		a.dirty = false
		return
	}
	if a.dirty {
		rl.UpdateTexture(a.tex, pixels(a.frame))
		a.dirty = false
	}
}

// pixels views the frame's bytes as RGBA colours without copying.
func pixels(img *image.RGBA) []color.RGBA {
	if len(img.Pix) == 0 {
		return nil
	}
	return unsafe.Slice((*color.RGBA)(unsafe.Pointer(&img.Pix[0])), len(img.Pix)/4)
}

func (a *App) DrawHUD() {
	s := a.engine.Snapshot()
	quality := s.Quality.String()
	if s.Quality == registry.Auto {
		quality = fmt.Sprintf("auto(%s)", s.Active)
	}

	rl.DrawRectangle(10, 10, 330, 62, ColPanel)
	rl.DrawText(a.fps, 20, 18, 20, ColText)
	rl.DrawRectangle(150, 18, 20, 20, a.color)
	rl.DrawText(fmt.Sprintf("%s  %s  %v", quality, s.Theme.Name, s.Speed), 180, 22, 14, ColText)
	hint := "+/- speed  1-4 quality  t/T theme  q quit"
	if a.message != "" {
		hint = a.message
	}
	rl.DrawText(hint, 20, 48, 12, ColTextDim)
}
