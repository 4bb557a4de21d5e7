package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/san-kum/fdprop/internal/config"
	"github.com/san-kum/fdprop/internal/models"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configFile string
	preset     string
	dims       int
	nx         int
	ny         int
	extent     float64
	dz         float64
	steps      int
	sampling   int
	parallel   bool
	workers    int
	validate   bool
	params     []string
	plot       bool
	spectrum   bool
	saveConfig string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "fdprop",
		Short:        "finite-difference paraxial beam propagation",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error, none)")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "propagate a model and print a summary",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPropagation,
	}
	addGridFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().IntVar(&sampling, "sample-every", 1, "keep every n-th slice for the z plots")
	runCmd.Flags().BoolVar(&validate, "validate", true, "fail on NaN/Inf in the field")
	runCmd.Flags().StringSliceVarP(&params, "param", "p", nil, "model parameter override key=value")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot initial and final intensity")
	runCmd.Flags().BoolVar(&spectrum, "spectrum", false, "plot the final transverse spectrum")
	runCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the resolved config to a yaml file")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		Run: func(cmd *cobra.Command, args []string) {
			reg := models.NewRegistry()
			for _, name := range reg.List() {
				m, _ := reg.Get(name)
				fmt.Printf("%-10s %s\n", name, m.Description)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print(describePresets(args[0]))
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "time propagation steps over a range of grid sizes",
		Args:  cobra.ExactArgs(1),
		RunE:  benchModel,
	}
	benchCmd.Flags().IntVar(&dims, "dims", 2, "transverse dimensions (1 or 2)")
	benchCmd.Flags().IntVar(&steps, "steps", 20, "steps per grid size")
	benchCmd.Flags().BoolVar(&parallel, "parallel", false, "parallel evaluation and sweeps")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")

	rootCmd.AddCommand(runCmd, modelsCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addGridFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	cmd.Flags().IntVar(&dims, "dims", def.Dims, "transverse dimensions (1 or 2)")
	cmd.Flags().IntVar(&nx, "nx", def.X.N, "samples along x")
	cmd.Flags().IntVar(&ny, "ny", def.Y.N, "samples along y")
	cmd.Flags().Float64Var(&extent, "extent", config.DefaultExtent, "half-width of the transverse window")
	cmd.Flags().Float64Var(&dz, "dz", def.Dz, "axial step")
	cmd.Flags().IntVar(&steps, "steps", def.Steps, "number of axial steps")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "parallel evaluation and sweeps")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")
}

func newLogger() (log.Logger, error) {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	var allow level.Option
	switch strings.ToLower(logLevel) {
	case "debug":
		allow = level.AllowDebug()
	case "info":
		allow = level.AllowInfo()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	case "none":
		allow = level.AllowNone()
	default:
		return nil, fmt.Errorf("unknown log level: %s", logLevel)
	}
	return level.NewFilter(logger, allow), nil
}

// describePresets lists a model's presets with their grid and stepping.
func describePresets(model string) string {
	names := config.ListPresets(model)
	if len(names) == 0 {
		return fmt.Sprintf("no presets for model: %s\n", model)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "presets for %s:\n", model)
	for _, name := range names {
		cfg := config.GetPreset(model, name)
		size := fmt.Sprint(cfg.X.N)
		if cfg.Dims == 2 {
			size = fmt.Sprintf("%dx%d", cfg.X.N, cfg.Y.N)
		}
		fmt.Fprintf(&b, "  %-8s %dD grid %-8s dz %-5g steps %-5d z %g\n",
			name, cfg.Dims, size, cfg.Dz, cfg.Steps, cfg.Z0+float64(cfg.Steps)*cfg.Dz)
		if len(cfg.Params) > 0 {
			keys := make([]string, 0, len(cfg.Params))
			for k := range cfg.Params {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			parts := make([]string, len(keys))
			for i, k := range keys {
				parts[i] = fmt.Sprintf("%s=%g", k, cfg.Params[k])
			}
			fmt.Fprintf(&b, "           %s\n", strings.Join(parts, " "))
		}
	}
	return b.String()
}
