package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jobshop-sim/jobshop-sim/sim"
	"github.com/jobshop-sim/jobshop-sim/sim/server"
)

var serveAddr string // Listen address of the driver API

// serveCmd exposes an instance to external agents over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the driver API of an instance over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveRunConfig(cmd)
		if err != nil {
			return err
		}
		instCfg, err := cfg.BuildInstance()
		if err != nil {
			return fmt.Errorf("build instance: %w", err)
		}
		inst, err := sim.NewInstance(instCfg)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              serveAddr,
			Handler:           server.New(inst).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logrus.Infof("Serving %d jobs on %d machines at %s", len(inst.Jobs()), len(inst.Machines()), serveAddr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
			logrus.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	addInstanceFlags(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")

	rootCmd.AddCommand(serveCmd)
}
