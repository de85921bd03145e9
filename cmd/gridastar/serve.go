package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/gridastar/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web visualiser",
	Long:  `Serves a browser page that steps searches over HTTP or a websocket stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := server.New(cfg, logger).ListenAndServe(ctx); err != nil {
			return err
		}
		logger.Info("visualiser stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "address to listen on")
}
