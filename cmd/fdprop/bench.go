package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/san-kum/fdprop/internal/config"
	"github.com/san-kum/fdprop/internal/experiment"
	"github.com/san-kum/fdprop/internal/models"
	"github.com/spf13/cobra"
)

func benchModel(cmd *cobra.Command, args []string) error {
	model := args[0]
	reg := models.NewRegistry()
	sizes := []int{32, 64, 128, 256}
	if dims == 1 {
		sizes = []int{256, 1024, 4096, 16384}
	}

	fmt.Printf("benchmarking %s (%dD)\n\n", model, dims)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tSTEPS\tTIME\tSTEPS/SEC\tPOINTS/SEC")

	for _, n := range sizes {
		cfg := config.DefaultConfig()
		cfg.Model = model
		cfg.Dims = dims
		cfg.X.N, cfg.Y.N = n, n
		cfg.Steps = steps
		cfg.SampleEvery = 0
		cfg.Parallel = parallel
		cfg.Workers = workers

		exp, err := experiment.New(cfg, reg, log.NewNopLogger())
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := exp.Run(context.Background())
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		points := exp.Grid().Size() * result.StepsTaken
		label := fmt.Sprint(n)
		if dims == 2 {
			label = fmt.Sprintf("%dx%d", n, n)
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\t%.3g\n",
			label, result.StepsTaken, elapsed.Round(time.Microsecond),
			float64(result.StepsTaken)/elapsed.Seconds(), float64(points)/elapsed.Seconds())
	}

	return w.Flush()
}
