//go:build linux

package fbdev

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/san-kum/matrixrain/internal/engine"
	"github.com/san-kum/matrixrain/internal/logging"
)

// WatchKeys reads every evdev device matching glob and calls onAction for
// each key action until ctx ends. Missing devices are logged, not fatal.
// onAction may be called from several goroutines; calls are serialized.
func WatchKeys(ctx context.Context, glob string, logger logging.Logger, onAction func(engine.Action)) {
	logger = logging.OrNoop(logger)
	tvSize := int(binary.Size(unix.Timeval{}))
	eventSize := EventSize(tvSize)

	paths, err := filepath.Glob(glob)
	if err != nil || len(paths) == 0 {
		logger.Infof("input", "no evdev devices match %s", glob)
		return
	}

	var mu sync.Mutex
	var kb Keyboard
	handle := func(events []Event) {
		mu.Lock()
		defer mu.Unlock()
		for _, ev := range events {
			if a := kb.Handle(ev); a != engine.ActionNone {
				onAction(a)
			}
		}
	}

	for _, path := range paths {
		p := path
		go func() {
			fd, err := unix.Open(p, unix.O_RDONLY|unix.O_NONBLOCK, 0)
			if err != nil {
				return
			}
			f := os.NewFile(uintptr(fd), p)
			defer f.Close()
			logger.Infof("input", "reading %s", p)

			buf := make([]byte, eventSize*64)
			for ctx.Err() == nil {
				pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
				if _, err := unix.Poll(pollFds, 250); err != nil {
					if err == unix.EINTR {
						continue
					}
					return
				}
				if pollFds[0].Revents&unix.POLLIN == 0 {
					continue
				}

				n, err := unix.Read(fd, buf)
				if err != nil {
					if err == unix.EAGAIN || err == unix.EINTR {
						continue
					}
					return
				}
				handle(ParseEvents(buf[:n], tvSize))
			}
		}()
	}
}
