package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/georgemunganga/copydesk/internal/modules/console"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the browser console",
	Long: `Serves the console UI. The product list is loaded from the API at startup;
use the Refresh button to reload it.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	c := console.New(svc, log, console.Options{NoticeTTL: cfg.NoticeTTL, APIBase: cfg.BaseURL()})
	defer c.Close()

	// A failed first load is reported in the banner; the console still starts.
	if err := c.Refresh(context.Background()); err != nil {
		log.Warn("initial refresh failed", "error", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           console.NewHandler(c).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("console listening", "addr", cfg.Addr, "api", cfg.BaseURL(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				log.Info("shutting down console")
				return srv.Shutdown(ctx)
			},
		},
	)

	select {
	case err := <-serveErr:
		return err
	case code := <-wait:
		if code != 0 {
			return fmt.Errorf("shutdown finished with exit code %d", code)
		}
		return <-serveErr
	}
}
