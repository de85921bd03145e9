package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/scenario"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Search many random grids concurrently",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		count, _ := flags.GetInt("count")
		workers, _ := flags.GetInt("workers")
		if count <= 0 {
			return fmt.Errorf("count must be positive")
		}

		base := scenario.RandomOptions{}
		base.Width, _ = flags.GetInt("width")
		base.Height, _ = flags.GetInt("height")
		base.Clusters, _ = flags.GetInt("clusters")
		base.Steps, _ = flags.GetInt("walk-steps")
		base.Density, _ = flags.GetFloat64("density")
		base.Seed, _ = flags.GetInt64("seed")
		if !flags.Changed("seed") {
			base.Seed = time.Now().UnixNano()
		}

		jobs := make([]astar.Job, count)
		for i := range jobs {
			opts := base
			opts.Seed = base.Seed + int64(i)
			problem, err := scenario.Random(opts)
			if err != nil {
				return err
			}
			jobs[i] = astar.Job{ID: problem.Name, Terrain: problem.Grid, Start: problem.Start, End: problem.End}
		}

		bar := progressbar.NewOptions(count,
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("searching"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish(),
		)

		opts, err := searchOptions(cmd, false)
		if err != nil {
			return err
		}
		if workers > 0 {
			opts = append(opts, astar.WithWorkers(workers))
		}
		opts = append(opts, astar.WithJobDone(func(astar.JobResult) { _ = bar.Add(1) }))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		began := time.Now()
		results, err := astar.SearchAll(ctx, jobs, opts...)
		if err != nil {
			return err
		}
		_ = bar.Finish()

		printSummary(cmd, results, time.Since(began))
		return nil
	},
}

func printSummary(cmd *cobra.Command, results []astar.JobResult, elapsed time.Duration) {
	var found, failed, pathCells, expanded int
	for _, r := range results {
		expanded += r.Result.ExpandedNodes
		switch {
		case r.Result.Found:
			found++
			pathCells += len(r.Result.Path)
		case r.Err != nil:
			failed++
			logger.Debug("search failed", "job", r.ID, "error", r.Err)
		}
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "searches:      %d in %s\n", len(results), elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "paths found:   %d\n", found)
	fmt.Fprintf(w, "no path:       %d\n", failed)
	if found > 0 {
		fmt.Fprintf(w, "avg path:      %.1f cells\n", float64(pathCells)/float64(found))
	}
	fmt.Fprintf(w, "avg expanded:  %.1f nodes\n", float64(expanded)/float64(len(results)))
}

func init() {
	rootCmd.AddCommand(benchCmd)
	addSearchFlags(benchCmd)
	addRandomFlags(benchCmd)
	benchCmd.Flags().IntP("count", "n", 100, "number of random grids")
	benchCmd.Flags().IntP("workers", "w", 0, "concurrent searches, CPU count when zero")
}
