package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/matrixrain/internal/config"
)

var (
	configFile string
	preset     string
	speedMs    int
	quality    string
	theme      string
	seed       int64
	glyphSize  int
	fontPath   string
	alphabet   string
	logFile    string
	stdioLog   string
	dataDir    string

	recordOut    string
	recordFrames int
	recordScale  int

	benchLoad int
	benchSave bool
	benchJSON bool

	sweepSpeeds  []int
	sweepLoads   []int
	sweepWorkers int
)

// main runs the root command, which starts the terminal host when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// newRootCmd registers every command and flag.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "matrixrain",
		Short:        "falling character rain with adaptive quality",
		SilenceUsage: true,
		RunE:         runTUI,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return redirectStdIO(stdioLog)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&speedMs, "speed", 50, "minimum frame interval in ms (16-200)")
	pf.StringVar(&quality, "quality", "high", "quality: high, medium, low or auto")
	pf.StringVar(&theme, "theme", "matrix", "colour theme")
	pf.Int64Var(&seed, "seed", 0, "random seed, 0 for time based")
	pf.IntVar(&glyphSize, "glyph-size", 20, "glyph size in pixels")
	pf.StringVar(&fontPath, "font", "", "TTF font file, empty for Go Mono")
	pf.StringVar(&alphabet, "alphabet", "katakana", "glyph alphabet: katakana (needs a --font with kana, else latin is drawn) or latin")
	pf.StringVar(&logFile, "log", "", "append log lines to this file")
	pf.StringVar(&stdioLog, "stdio-log", "", "redirect stdout and stderr to this file")
	pf.StringVar(&dataDir, "data", ".matrixrain", "data directory for benchmark runs")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal",
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a window",
		RunE:  runGUI,
	}
	guiCmd.Flags().Int("width", config.DefaultWidth, "window width")
	guiCmd.Flags().Int("height", config.DefaultHeight, "window height")

	fbCmd := &cobra.Command{
		Use:   "fb",
		Short: "run on the linux framebuffer",
		RunE:  runFramebuffer,
	}
	fbCmd.Flags().Int("width", 0, "surface width, 0 for the device width")
	fbCmd.Flags().Int("height", 0, "surface height, 0 for the device height")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "render headless to a png or gif",
		RunE:  runRecord,
	}
	recordCmd.Flags().StringVarP(&recordOut, "output", "o", "rain.gif", "output file (.png or .gif)")
	recordCmd.Flags().IntVar(&recordFrames, "frames", 120, "frame callbacks to run")
	recordCmd.Flags().IntVar(&recordScale, "scale", 1, "downscale factor")
	recordCmd.Flags().Int("width", config.DefaultWidth, "surface width")
	recordCmd.Flags().Int("height", config.DefaultHeight, "surface height")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the adaptive quality loop",
		RunE:  runBench,
	}
	benchCmd.Flags().Int("time", 10000, "simulated duration in ms")
	benchCmd.Flags().Int("vsync", 16, "refresh period in ms")
	benchCmd.Flags().IntVar(&benchLoad, "load", 0, "simulated cost per column per frame in us")
	benchCmd.Flags().BoolVar(&benchSave, "save", false, "store the run in the data directory")
	benchCmd.Flags().BoolVar(&benchJSON, "json", false, "print the run as json")
	benchCmd.Flags().Int("width", config.DefaultWidth, "surface width")
	benchCmd.Flags().Int("height", config.DefaultHeight, "surface height")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "benchmark a grid of speeds and loads",
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntSliceVar(&sweepSpeeds, "speeds", []int{16, 33, 50}, "frame intervals in ms")
	sweepCmd.Flags().IntSliceVar(&sweepLoads, "loads", []int{0, 200, 800}, "per column loads in us")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 1, "concurrent runs")
	sweepCmd.Flags().Int("time", 5000, "simulated duration per run in ms")
	sweepCmd.Flags().Int("vsync", 16, "refresh period in ms")
	sweepCmd.Flags().Int("width", config.DefaultWidth, "surface width")
	sweepCmd.Flags().Int("height", config.DefaultHeight, "surface height")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored benchmark runs",
		RunE:  listRuns,
	}
	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	runsCmd.AddCommand(plotCmd, exportCmd)

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list colour themes",
		RunE:  listThemes,
	}
	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective config to a file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, guiCmd, fbCmd, recordCmd, benchCmd, sweepCmd, runsCmd, themesCmd, presetsCmd, configCmd)
	return rootCmd
}
