package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/render"
	"github.com/pdrpinto/gridastar/internal/scenario"
)

var runCmd = &cobra.Command{
	Use:   "run [scenario]",
	Short: "Search a scenario file or a random grid",
	Long: `Loads a YAML scenario or text map, or generates a random grid when no file
is given, and steps the search until it is done. The final grid is printed
with the path marked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		problem, err := loadProblem(cmd, args)
		if err != nil {
			return err
		}
		opts, err := searchOptions(cmd, problem.Diagonal)
		if err != nil {
			return err
		}

		stepper, err := astar.NewStepper(problem.Grid, problem.Start, problem.End, opts...)
		if err != nil {
			return err
		}
		canvas := render.NewCanvas(problem.Grid, problem.Start, problem.End)
		canvas.Apply(stepper.DrainDirty())

		w := cmd.OutOrStdout()
		term := render.NewTerminal(w, cfg.Render.Color)
		animate, _ := cmd.Flags().GetBool("animate")
		if err := step(cmd, stepper, canvas, term, animate); err != nil {
			return err
		}

		if err := term.Frame(canvas); err != nil {
			return err
		}
		if path, _ := cmd.Flags().GetString("png"); path != "" {
			if err := render.SavePNG(path, canvas, cfg.Render.CellSize); err != nil {
				return fmt.Errorf("save %s: %w", path, err)
			}
			logger.Info("frame saved", "path", path)
		}

		res := stepper.Result()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		printResult(w, problem.Name, res)
		return nil
	},
}

// step drives the stepper to completion, redrawing after every step when
// animate is set.
func step(cmd *cobra.Command, stepper *astar.Stepper, canvas *render.Canvas, term *render.Terminal, animate bool) error {
	out := termenv.NewOutput(cmd.OutOrStdout())
	maxSteps := cfg.Search.MaxSteps
	ctx := cmd.Context()

	for i := 0; !stepper.IsDone(); i++ {
		if maxSteps > 0 && i >= maxSteps {
			return fmt.Errorf("%w after %d steps", astar.ErrStepLimit, maxSteps)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := stepper.Step(); err != nil {
			return err
		}
		canvas.Apply(stepper.DrainDirty())

		if animate {
			out.ClearScreen()
			if err := term.Frame(canvas); err != nil {
				return err
			}
			time.Sleep(cfg.Render.FrameDelay)
		}
	}
	if animate {
		out.ClearScreen()
	}
	return nil
}

func loadProblem(cmd *cobra.Command, args []string) (scenario.Problem, error) {
	if len(args) == 1 {
		return scenario.Load(args[0])
	}
	flags := cmd.Flags()
	opts := scenario.RandomOptions{}
	opts.Width, _ = flags.GetInt("width")
	opts.Height, _ = flags.GetInt("height")
	opts.Clusters, _ = flags.GetInt("clusters")
	opts.Steps, _ = flags.GetInt("walk-steps")
	opts.Density, _ = flags.GetFloat64("density")
	opts.Seed, _ = flags.GetInt64("seed")
	if !flags.Changed("seed") {
		opts.Seed = time.Now().UnixNano()
	}
	return scenario.Random(opts)
}

func printResult(w io.Writer, name string, res astar.Result) {
	if !res.Found {
		fmt.Fprintf(w, "%s: no path after %d steps, %d nodes expanded\n", name, res.Steps, res.ExpandedNodes)
		return
	}
	fmt.Fprintf(w, "%s: path of %d cells (cost %d) after %d steps, %d nodes expanded\n",
		name, len(res.Path), res.Cost, res.Steps, res.ExpandedNodes)
}

func addRandomFlags(cmd *cobra.Command) {
	cmd.Flags().Int("width", 40, "random grid width")
	cmd.Flags().Int("height", 24, "random grid height")
	cmd.Flags().Int("clusters", 8, "obstacle clusters")
	cmd.Flags().Int("walk-steps", 200, "random walk steps per cluster")
	cmd.Flags().Float64("density", 0.25, "chance a walk step places an obstacle")
	cmd.Flags().Int64("seed", 0, "random seed, time based when unset")
}

func init() {
	rootCmd.AddCommand(runCmd)
	addSearchFlags(runCmd)
	addRandomFlags(runCmd)
	runCmd.Flags().Bool("animate", false, "redraw the grid after every step")
	runCmd.Flags().String("png", "", "also write the final grid to this PNG file")
	runCmd.Flags().Bool("json", false, "print the result as JSON")
}
