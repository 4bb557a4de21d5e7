package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/fdprop/internal/analysis"
	"github.com/san-kum/fdprop/internal/config"
	"github.com/san-kum/fdprop/internal/experiment"
	"github.com/san-kum/fdprop/internal/grid"
	"github.com/san-kum/fdprop/internal/models"
	"github.com/san-kum/fdprop/internal/runner"
	"github.com/san-kum/fdprop/internal/viz"
	"github.com/spf13/cobra"
)

func runPropagation(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
	}

	exp, err := experiment.New(cfg, models.NewRegistry(), logger)
	if err != nil {
		return err
	}

	var initial []complex128
	var power []float64
	exp.Runner().AddObserver(runner.ObserverFunc(func(i int, z float64, field []complex128) {
		if i == 0 {
			initial = field
		}
		if cfg.SampleEvery > 0 && i%cfg.SampleEvery == 0 {
			var p float64
			for _, v := range analysis.Intensity(field) {
				p += v
			}
			power = append(power, p)
		}
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("propagating %s (%dD)...\n", cfg.Model, cfg.Dims)
	start := time.Now()
	result, runErr := exp.Run(ctx)
	if result == nil {
		return runErr
	}
	elapsed := time.Since(start)

	g := exp.Grid()
	rows := map[string]string{
		"grid":    gridLabel(g),
		"steps":   strconv.Itoa(result.StepsTaken),
		"z":       fmt.Sprintf("%.4g", result.Z[len(result.Z)-1]),
		"elapsed": elapsed.Round(time.Millisecond).String(),
	}
	for name, val := range result.Metrics {
		rows[name] = fmt.Sprintf("%.6g", val)
	}
	if b, err := beam(g, result.Final); err == nil {
		rows["centroid"] = fmt.Sprintf("%.4g", b.Centroid)
		rows["rms_width"] = fmt.Sprintf("%.4g", b.Width)
	}
	status := viz.StatusOK.Render("completed")
	if runErr != nil {
		status = viz.StatusFailed.Render("stopped: " + runErr.Error())
	}
	fmt.Println(viz.Summary(cfg.Model+" "+status, rows))
	if len(power) > 1 {
		fmt.Println(viz.Subtle.Render("power vs z ") + viz.Sparkline(power, 60))
	}

	if plot {
		out, err := intensityView(g, initial, result.Final)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(out)
	}
	if spectrum {
		out, err := spectrumView(g, result.Final)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(out)
	}
	return runErr
}

// resolveConfig layers defaults, preset, config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Model = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Model))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) > 0 && loaded.Model != args[0] {
			return nil, fmt.Errorf("config file is for model %s, not %s", loaded.Model, args[0])
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dims") {
		cfg.Dims = dims
	}
	if flags.Changed("nx") {
		cfg.X.N = nx
	}
	if flags.Changed("ny") {
		cfg.Y.N = ny
	}
	if flags.Changed("extent") {
		cfg.X.Min, cfg.X.Max = -extent, extent
		cfg.Y.Min, cfg.Y.Max = -extent, extent
	}
	if flags.Changed("dz") {
		cfg.Dz = dz
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampling
	}
	if flags.Changed("parallel") {
		cfg.Parallel = parallel
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("validate") {
		cfg.CheckField = validate
	}

	overrides, err := parseParams(params)
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 && cfg.Params == nil {
		cfg.Params = make(map[string]float64, len(overrides))
	}
	for k, v := range overrides {
		cfg.Params[k] = v
	}
	return cfg, cfg.Validate()
}

func parseParams(kv []string) (map[string]float64, error) {
	out := make(map[string]float64, len(kv))
	for _, s := range kv {
		key, val, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("invalid parameter %q, want key=value", s)
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", key, err)
		}
		out[strings.TrimSpace(key)] = f
	}
	return out, nil
}

func gridLabel(g *grid.Grid) string {
	if g.Dim() == 1 {
		return fmt.Sprintf("%d (dx %.3g, dz %.3g)", g.Nx(), g.Dx(), g.Dz())
	}
	return fmt.Sprintf("%dx%d (dx %.3g, dy %.3g, dz %.3g)", g.Nx(), g.Ny(), g.Dx(), g.Dy(), g.Dz())
}

// profile returns the x-line of a slice: the slice itself in 1D, the centre
// cut in 2D.
func profile(g *grid.Grid, field []complex128) ([]complex128, error) {
	if g.Dim() == 1 {
		return field, nil
	}
	return analysis.Cut(field, g.Nx(), g.Ny())
}

func beam(g *grid.Grid, field []complex128) (analysis.Beam, error) {
	line, err := profile(g, field)
	if err != nil {
		return analysis.Beam{}, err
	}
	x := make([]float64, g.Nx())
	for i := range x {
		x[i] = g.X(i)
	}
	return analysis.BeamOf(x, analysis.Intensity(line))
}

func intensityView(g *grid.Grid, initial, final []complex128) (string, error) {
	first, err := profile(g, initial)
	if err != nil {
		return "", err
	}
	last, err := profile(g, final)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(viz.PlotMany([][]float64{analysis.Intensity(first), analysis.Intensity(last)}, 80, 12,
		"intensity along x: initial (blue), final (red)"))
	b.WriteString("\n\n")
	b.WriteString(viz.Plot(analysis.Phase(last), 80, 8, "final phase along x (rad)"))
	b.WriteString("\n")

	if g.Dim() == 2 {
		m := viz.NewHeatmap(60, 24)
		m.Draw(analysis.Intensity(final), g.Nx(), g.Ny())
		b.WriteString("\n")
		b.WriteString(viz.Panel.Render(m.String()))
		b.WriteString("\n")
	}
	return b.String(), nil
}

func spectrumView(g *grid.Grid, final []complex128) (string, error) {
	line, err := profile(g, final)
	if err != nil {
		return "", err
	}
	s := analysis.Spectrum(line)
	k := analysis.Frequencies(len(line), g.Dx())

	var b strings.Builder
	b.WriteString(viz.Plot(s, 80, 12, fmt.Sprintf("power spectrum, kx in [%.3g, %.3g]", k[0], k[len(k)-1])))
	b.WriteString("\n")

	if g.Dim() == 2 {
		s2, err := analysis.Spectrum2D(final, g.Nx(), g.Ny())
		if err != nil {
			return "", err
		}
		flat := make([]float64, 0, g.Size())
		for _, row := range s2 {
			flat = append(flat, row...)
		}
		ky := analysis.Frequencies(g.Ny(), g.Dy())
		m := viz.NewHeatmap(60, 24)
		m.Draw(flat, g.Nx(), g.Ny())
		b.WriteString("\n")
		b.WriteString(viz.Panel.Render(m.String()))
		b.WriteString("\n")
		b.WriteString(viz.Subtle.Render(fmt.Sprintf("kx across, ky in [%.3g, %.3g] upward", ky[0], ky[len(ky)-1])))
		b.WriteString("\n")
	}
	return b.String(), nil
}
