package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridkit/infinigrid/pkg/feed"
)

// serveCommand creates the feed server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		seed    int64
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the card feed as a small HTTP API",
		Long: `Serve the card feed as a small HTTP API.

The server exposes the deterministic card generator over HTTP so that
'infinigrid demo --source' can consume it remotely:

  GET /cards                 first page
  GET /cards?after=page-N    page following page-N
  GET /cards?before=page-N   page preceding page-N
  GET /healthz               liveness probe

The same seed always serves identical pages, so responses are safe to
cache aggressively on the client side.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, seed, perPage)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().Int64Var(&seed, "seed", defaultSeed, "feed generator seed")
	cmd.Flags().IntVar(&perPage, "per-page", 6, "cards per feed page")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, seed int64, perPage int) error {
	handler := feed.NewServer(feed.NewGenerator(seed, perPage), c.Logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	c.Logger.Info("serving feed", "addr", addr, "seed", seed)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		c.Logger.Info("server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
