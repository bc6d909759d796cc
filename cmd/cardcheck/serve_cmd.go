package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alovak/cardcheck/validator"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		httpAddr    string
		iso8583Addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the ISO 8583 verification listener",
		Long: `Run the validation service until SIGINT or SIGTERM.

Examples:
  cardcheck serve --http-addr=:9090
  cardcheck serve --card-types=configs/card_types.yaml --iso8583-addr=""`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.config()
			if cmd.Flags().Changed("http-addr") {
				cfg.HTTPAddr = httpAddr
			}
			if cmd.Flags().Changed("iso8583-addr") {
				cfg.ISO8583Addr = iso8583Addr
			}

			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}

			app := validator.NewApp(logger, cfg)
			if err := app.Start(); err != nil {
				return err
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case sig := <-sigChan:
				logger.Info("received signal, shutting down", slog.String("signal", sig.String()))
			case <-cmd.Context().Done():
			}

			app.Shutdown()
			return nil
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http-addr", "", "HTTP listen address (default: CARDCHECK_HTTP_ADDR or localhost:9090)")
	cmd.Flags().StringVar(&iso8583Addr, "iso8583-addr", "", "ISO 8583 listen address, empty disables it")

	return cmd
}
