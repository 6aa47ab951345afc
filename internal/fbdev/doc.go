// Package fbdev hosts the rain on a Linux framebuffer console, reading the
// keyboard straight from evdev devices.
package fbdev
