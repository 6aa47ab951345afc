package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/matrixrain/internal/config"
	"github.com/san-kum/matrixrain/internal/engine"
	"github.com/san-kum/matrixrain/internal/logging"
	"github.com/san-kum/matrixrain/internal/render"
)

// loadConfig builds the effective config: file or defaults, then the preset,
// then any flag given on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" && !cfg.ApplyPreset(preset) {
		return nil, fmt.Errorf("preset %q not found, available: %v", preset, config.ListPresets())
	}

	flags := cmd.Flags()
	if flags.Changed("speed") {
		cfg.SpeedMs = speedMs
	}
	if flags.Changed("quality") {
		cfg.Quality = quality
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("glyph-size") {
		cfg.GlyphSize = glyphSize
	}
	if flags.Changed("font") {
		cfg.Font = fontPath
	}
	if flags.Changed("alphabet") {
		cfg.Alphabet = alphabet
	}
	if flags.Changed("log") {
		cfg.LogFile = logFile
	}
	if w, ok := changedInt(cmd, "width"); ok {
		cfg.Surface.Width = w
	}
	if h, ok := changedInt(cmd, "height"); ok {
		cfg.Surface.Height = h
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// changedInt returns the value of an int flag defined on cmd, and whether it
// was given on the command line.
func changedInt(cmd *cobra.Command, name string) (int, bool) {
	flags := cmd.Flags()
	if flags.Lookup(name) == nil || !flags.Changed(name) {
		return 0, false
	}
	v, err := flags.GetInt(name)
	return v, err == nil
}

// openLogger returns a file logger for cfg.LogFile, or a no-op logger. The
// returned func closes the file.
func openLogger(cfg *config.Config) (logging.Logger, func(), error) {
	if cfg.LogFile == "" {
		return logging.NoopLogger{}, func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return logging.NewFileLogger(f), func() { f.Close() }, nil
}

func engineOptions(cfg *config.Config, logger logging.Logger) (engine.Options, error) {
	face, err := render.LoadFace(cfg.Font, float64(cfg.GlyphSize))
	if err != nil {
		return engine.Options{}, fmt.Errorf("font: %w", err)
	}
	alpha, err := render.ParseAlphabet(cfg.Alphabet)
	if err != nil {
		return engine.Options{}, err
	}
	s := cfg.SeedOrNow()
	logger.Infof("main", "seed=%d quality=%s theme=%s speed=%v", s, cfg.Quality, cfg.Theme, cfg.Speed())

	return engine.Options{
		Width:     cfg.Surface.Width,
		Height:    cfg.Surface.Height,
		Quality:   cfg.Level(),
		Theme:     cfg.ThemeValue(),
		Speed:     cfg.Speed(),
		GlyphSize: cfg.GlyphSize,
		Seed:      s,
		Renderer:  render.New(face, alpha, logger),
		Logger:    logger,
	}, nil
}

// setup runs the shared start-up for every host command.
func setup(cmd *cobra.Command) (*config.Config, engine.Options, logging.Logger, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, engine.Options{}, nil, nil, err
	}
	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return nil, engine.Options{}, nil, nil, err
	}
	opts, err := engineOptions(cfg, logger)
	if err != nil {
		closeLog()
		return nil, engine.Options{}, nil, nil, err
	}
	return cfg, opts, logger, closeLog, nil
}
