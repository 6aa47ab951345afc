//go:build !linux

package fbdev

import (
	"context"
	"errors"
	"time"

	"github.com/san-kum/matrixrain/internal/engine"
	"github.com/san-kum/matrixrain/internal/logging"
)

var ErrUnsupported = errors.New("fbdev: framebuffer host requires linux")

type Options struct {
	Device        string
	InputGlob     string
	FrameInterval time.Duration
	Width         int
	Height        int
	Logger        logging.Logger
}

func Run(ctx context.Context, eopts engine.Options, opts Options) error {
	return ErrUnsupported
}
