package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stagewalk/stagewalk/internal/api"
	"github.com/stagewalk/stagewalk/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string
	noCache bool
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP API",
		Long: `Run an HTTP server exposing the analysis pipeline.

Endpoints:
  POST /api/analyze       analyze a posted config (TOML, or YAML by Content-Type)
  GET  /api/reports/{id}  fetch a persisted report
  GET  /healthz           liveness check

Reports are kept in memory unless STAGEWALK_MONGO_URI is set, in which
case they are persisted to MongoDB.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Cache.Close()

	st, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           api.NewServer(runner, st, c.Logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newStore picks the report store: MongoDB when configured, otherwise
// in-memory.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	uri := os.Getenv("STAGEWALK_MONGO_URI")
	if uri == "" {
		return store.NewMemoryStore(), nil
	}
	ms, err := store.NewMongoStore(ctx, uri, appName)
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using mongo report store")
	return ms, nil
}
