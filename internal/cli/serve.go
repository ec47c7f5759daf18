package cli

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scenedoc/internal/server"
	"github.com/matzehuels/scenedoc/pkg/observability/prom"
	"github.com/matzehuels/scenedoc/pkg/pipeline"
	"github.com/matzehuels/scenedoc/pkg/store"
)

// serveFlags holds the flags of the serve command.
type serveFlags struct {
	addr      string
	redisAddr string
	mongoURI  string
	mongoDB   string
	noMetrics bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP document server",
		Long: `Run an HTTP server that serializes posted scene descriptions and serves
the published documents by key.

Documents are kept in Redis when --redis (or ` + envRedisAddr + `) is set,
in MongoDB when --mongo (or ` + envMongoURI + `) is set, and in the local
document store otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&flags.redisAddr, "redis", os.Getenv(envRedisAddr), "Redis address for the document store")
	cmd.Flags().StringVar(&flags.mongoURI, "mongo", os.Getenv(envMongoURI), "MongoDB URI for the document store")
	cmd.Flags().StringVar(&flags.mongoDB, "mongo-db", appName, "MongoDB database name")
	cmd.Flags().BoolVar(&flags.noMetrics, "no-metrics", false, "disable the /metrics endpoint")
	cmd.MarkFlagsMutuallyExclusive("redis", "mongo")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, flags serveFlags) error {
	st, backend, err := c.openStore(ctx, flags)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store.Instrument(st, backend), nil, c.Logger)
	defer runner.Close()

	opts := []server.Option{server.WithLogger(c.Logger)}
	if !flags.noMetrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := prom.New(appName)
		m.MustRegister(reg)
		m.Install()
		opts = append(opts, server.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	c.Logger.Info("document store", "backend", backend)
	return server.New(runner, opts...).ListenAndServe(ctx, flags.addr)
}

// openStore picks the document store backend from the flags.
func (c *CLI) openStore(ctx context.Context, flags serveFlags) (store.Store, string, error) {
	switch {
	case flags.redisAddr != "":
		rs := store.NewRedisStore(flags.redisAddr)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, "", err
		}
		return rs, "redis", nil
	case flags.mongoURI != "":
		ms, err := store.NewMongoStore(ctx, flags.mongoURI, flags.mongoDB, "documents")
		if err != nil {
			return nil, "", err
		}
		return ms, "mongo", nil
	}
	fs, err := newFileStore(false)
	if err != nil {
		return nil, "", err
	}
	return fs, "file", nil
}
