//go:build linux

package fbdev

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/san-kum/matrixrain/internal/logging"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A
)

var vtPaths = []string{"/dev/tty", "/dev/tty0"}

func setConsoleMode(mode int) error {
	var lastErr error
	for _, p := range vtPaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE %d on %s: %w", mode, p, err)
			continue
		}
		return nil
	}
	return lastErr
}

func writeVT(s string) error {
	var lastErr error
	for _, p := range vtPaths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("write vt: %w", lastErr)
}

// takeConsole switches the console to graphics mode and hides the cursor.
// The returned func restores both. Failures are logged only; a console that
// stays in text mode just shows a cursor.
func takeConsole(logger logging.Logger) func() {
	if err := setConsoleMode(kdGraphics); err != nil {
		logger.Errorf("tty", "graphics mode: %v", err)
	} else {
		logger.Infof("tty", "graphics mode set")
	}
	if err := writeVT("\x1b[?25l"); err != nil {
		logger.Errorf("tty", "hide cursor: %v", err)
	}
	return func() {
		if err := writeVT("\x1b[?25h"); err != nil {
			logger.Errorf("tty", "show cursor: %v", err)
		}
		if err := setConsoleMode(kdText); err != nil {
			logger.Errorf("tty", "text mode: %v", err)
		} else {
			logger.Infof("tty", "text mode restored")
		}
	}
}
