//go:build linux

package fbdev

import (
	"context"
	"errors"
	"time"

	fb "github.com/gonutz/framebuffer"

	"github.com/san-kum/matrixrain/internal/engine"
	"github.com/san-kum/matrixrain/internal/logging"
)

// Options configures the framebuffer host. Zero values select defaults.
type Options struct {
	Device        string
	InputGlob     string
	FrameInterval time.Duration
	// Width and Height of the rain surface; 0 uses the device size.
	Width  int
	Height int
	Logger logging.Logger
}

// Run draws on the framebuffer until ctx ends or Esc, q or F4 is pressed.
func Run(ctx context.Context, eopts engine.Options, opts Options) error {
	if opts.Device == "" {
		opts.Device = "/dev/fb0"
	}
	if opts.InputGlob == "" {
		opts.InputGlob = "/dev/input/event*"
	}
	logger := logging.OrNoop(opts.Logger)

	dev, err := fb.Open(opts.Device)
	if err != nil {
		return err
	}
	defer dev.Close()
	bounds := dev.Bounds()
	logger.Infof("fb", "framebuffer %s open, bounds=%dx%d", opts.Device, bounds.Dx(), bounds.Dy())

	restore := takeConsole(logger)
	defer restore()

	eopts.Width, eopts.Height = opts.Width, opts.Height
	if eopts.Width <= 0 || eopts.Height <= 0 {
		eopts.Width, eopts.Height = bounds.Dx(), bounds.Dy()
	}
	display := NewDisplay(dev)
	if eopts.Display != nil {
		eopts.Display = engine.MultiDisplay{display, eopts.Display}
	} else {
		eopts.Display = display
	}
	if eopts.Logger == nil {
		eopts.Logger = logger
	}
	e := engine.New(eopts)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	WatchKeys(ctx, opts.InputGlob, logger, func(a engine.Action) {
		if a == engine.ActionQuit {
			logger.Infof("input", "exit key pressed")
			cancel()
			return
		}
		logger.Infof("input", "%s", e.Apply(a))
	})

	src := engine.NewTickerSource(opts.FrameInterval)
	defer src.Stop()
	if err := e.Run(ctx, src); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
