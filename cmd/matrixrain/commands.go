package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/matrixrain/internal/config"
	"github.com/san-kum/matrixrain/internal/engine"
	"github.com/san-kum/matrixrain/internal/fbdev"
	"github.com/san-kum/matrixrain/internal/gui"
	"github.com/san-kum/matrixrain/internal/record"
	"github.com/san-kum/matrixrain/internal/registry"
	"github.com/san-kum/matrixrain/internal/storage"
	"github.com/san-kum/matrixrain/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, opts, logger, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	return tui.Run(cmd.Context(), opts, tui.Options{
		CellWidth:     cfg.TUI.CellWidth,
		CellHeight:    cfg.TUI.CellHeight,
		FrameInterval: cfg.TUI.FrameInterval(),
		RecordDir:     ".",
		Logger:        logger,
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, opts, logger, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	return gui.Run(cmd.Context(), opts, gui.Options{
		Width:  cfg.Surface.Width,
		Height: cfg.Surface.Height,
		Title:  "matrixrain",
		Logger: logger,
	})
}

func runFramebuffer(cmd *cobra.Command, args []string) error {
	cfg, opts, logger, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	fbOpts := fbdev.Options{
		Device:        cfg.Framebuffer.Device,
		InputGlob:     cfg.Framebuffer.InputGlob,
		FrameInterval: cfg.Framebuffer.FrameInterval(),
		Width:         cfg.Framebuffer.Width,
		Height:        cfg.Framebuffer.Height,
		Logger:        logger,
	}
	if w, ok := changedInt(cmd, "width"); ok {
		fbOpts.Width = w
	}
	if h, ok := changedInt(cmd, "height"); ok {
		fbOpts.Height = h
	}
	return fbdev.Run(cmd.Context(), opts, fbOpts)
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, opts, _, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Record.Output = recordOut
	}
	if flags.Changed("frames") {
		cfg.Record.Frames = recordFrames
	}
	if flags.Changed("scale") {
		cfg.Record.Scale = recordScale
	}

	start := time.Now()
	rec, err := record.Record(cmd.Context(), opts, record.Settings{
		Frames:   cfg.Record.Frames,
		Interval: cfg.Record.Interval(),
		Output:   cfg.Record.Output,
		Scale:    cfg.Record.Scale,
	})
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s in %v\n", cfg.Record.Output, time.Since(start).Round(time.Millisecond))
	if n := rec.Frames(); n > 0 {
		fmt.Printf("  %d frames\n", n)
	}
	for _, r := range rec.Readouts() {
		fmt.Println("  " + r)
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, opts, _, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	if ms, ok := changedInt(cmd, "time"); ok {
		cfg.Bench.DurationMs = ms
	}
	if ms, ok := changedInt(cmd, "vsync"); ok {
		cfg.Bench.VsyncMs = ms
	}
	if cmd.Flags().Changed("load") {
		cfg.Bench.LoadPerColumnUs = benchLoad
	}

	res, err := record.Bench(cmd.Context(), opts, record.BenchSettings{
		Duration:      cfg.Bench.Duration(),
		Vsync:         cfg.Bench.Vsync(),
		LoadPerColumn: cfg.Bench.LoadPerColumn(),
	})
	if err != nil {
		return err
	}

	meta := storage.NewRunMetadata(storage.RunConfig{
		Seed:            opts.Seed,
		Quality:         cfg.Quality,
		Theme:           cfg.Theme,
		Width:           opts.Width,
		Height:          opts.Height,
		SpeedMs:         cfg.SpeedMs,
		VsyncMs:         cfg.Bench.VsyncMs,
		LoadPerColumnUs: cfg.Bench.LoadPerColumnUs,
	}, res)

	if benchJSON {
		if err := storage.ExportJSON(os.Stdout, meta); err != nil {
			return err
		}
	} else if err := res.WriteReport(os.Stdout); err != nil {
		return err
	}

	if benchSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(meta, res.Samples)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved run %s\n", runID)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	perRun, err := cmd.Flags().GetInt("time")
	if err != nil {
		return err
	}
	if ms, ok := changedInt(cmd, "vsync"); ok {
		cfg.Bench.VsyncMs = ms
	}

	settings := record.SweepSettings{
		Bench: record.BenchSettings{
			Duration: time.Duration(perRun) * time.Millisecond,
			Vsync:    cfg.Bench.Vsync(),
		},
		Workers: sweepWorkers,
	}
	for _, ms := range sweepSpeeds {
		settings.Speeds = append(settings.Speeds, time.Duration(ms)*time.Millisecond)
	}
	for _, us := range sweepLoads {
		settings.Loads = append(settings.Loads, time.Duration(us)*time.Microsecond)
	}

	points, err := record.Sweep(cmd.Context(), func() (engine.Options, error) {
		return engineOptions(cfg, logger)
	}, settings)
	if err != nil {
		return err
	}
	return record.WriteSweep(os.Stdout, points)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tQUALITY\tFINAL\tMEAN FPS\tCHANGES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\t%s\t%.1f\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Width, run.Config.Height,
			run.Config.Quality,
			run.FinalActive,
			run.MeanFPS,
			len(run.Transitions),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(samples))

	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = float64(s.FPS)
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("fps vs time"),
	)
	fmt.Println(graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta)
}

func listThemes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOLOUR")
	for _, t := range registry.Themes() {
		colour := registry.Hex(t.Color)
		if t.Cycles() {
			colour = "cycles"
			for _, c := range t.Palette {
				colour += " " + registry.Hex(c)
			}
		}
		fmt.Fprintf(w, "%s\t%s\n", t.Name, colour)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tQUALITY\tTHEME\tSPEED")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%dms\n", name, p.Quality, p.Theme, p.SpeedMs)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
