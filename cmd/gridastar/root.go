package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/config"
	"github.com/pdrpinto/gridastar/internal/logging"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gridastar",
	Short: "gridastar steps an A* search over a 2D grid",
	Long: `gridastar runs an incremental A* search over an obstacle grid, one node
expansion at a time, and shows its progress in the terminal, as PNG frames or
in a browser.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.Log.Level, _ = cmd.Flags().GetString("log-level")
		}
		level, err := logging.ParseLevel(loaded.Log.Level)
		if err != nil {
			return err
		}
		cfg, logger = loaded, logging.New(level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML config file")
	rootCmd.PersistentFlags().String("log-level", "info", "debug, info, warn or error")
}

// addSearchFlags registers the engine overrides shared by run and bench.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("diagonal", false, "allow diagonal moves")
	cmd.Flags().String("cost-model", "", "manhattan or accumulated")
}

// searchOptions starts from the config and applies flag overrides. A
// scenario asking for diagonal moves wins over the config but not over the
// flag.
func searchOptions(cmd *cobra.Command, scenarioDiagonal bool) ([]astar.Option, error) {
	opts := cfg.SearchOptions(logger)
	flags := cmd.Flags()
	if flags.Changed("diagonal") {
		diagonal, _ := flags.GetBool("diagonal")
		opts = append(opts, astar.WithDiagonal(diagonal))
	} else if scenarioDiagonal {
		opts = append(opts, astar.WithDiagonal(true))
	}
	if flags.Changed("cost-model") {
		name, _ := flags.GetString("cost-model")
		model, err := astar.ParseCostModel(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, astar.WithCostModel(model))
	}
	return opts, nil
}
