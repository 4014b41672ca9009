package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	bucketlistapi "github.com/bucketlist/server/functions/bucketlist-api"
	"github.com/bucketlist/server/pkg/bootstrap"
	"github.com/bucketlist/server/pkg/catalog"
)

var (
	serveAddr   string
	serveMemory bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API locally",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().BoolVar(&serveMemory, "memory", false, "Use an in-memory store instead of Firestore")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var svc *bootstrap.Service
	if serveMemory {
		bootstrap.InitLogger()
		svc = bootstrap.NewMemoryService(nil)
	} else {
		var err error
		if svc, err = bootstrap.NewService(ctx); err != nil {
			return err
		}
	}

	seed, err := catalog.Seed()
	if err != nil {
		return err
	}
	api := bucketlistapi.NewAPI(svc, seed, bootstrap.NewLogger("bucketlist-api"))
	defer api.Close()

	srv := &http.Server{
		Addr:              serveAddr,
		Handler:           api,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	slog.Info("Listening", "addr", serveAddr, "memory", serveMemory)

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
