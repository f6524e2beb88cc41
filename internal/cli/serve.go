package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ontomat/internal/server"
	"github.com/matzehuels/ontomat/pkg/cache"
	"github.com/matzehuels/ontomat/pkg/pipeline"
	"github.com/matzehuels/ontomat/pkg/store"
)

// serveOpts holds options for the serve command.
type serveOpts struct {
	addr       string
	redisAddr  string
	mongoURI   string
	mongoDB    string
	budget     int
	cycleLimit int
	noCache    bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := &serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Serve starts the hierarchy HTTP API. Records are kept in memory unless a
MongoDB URI is given, and pipeline results are cached on disk unless a Redis
address is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "redis address for the pipeline cache")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "mongodb connection URI for the record store")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", appName, "mongodb database name")
	cmd.Flags().IntVar(&opts.budget, "budget", pipeline.DefaultBudget, "default longest-path search budget")
	cmd.Flags().IntVar(&opts.cycleLimit, "cycle-limit", 1000, "default cycle enumeration limit")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the pipeline cache")

	return cmd
}

// runServe wires up the store, cache, and runner, then serves until the
// command context is cancelled.
func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()

	st, err := c.newStore(cmd, opts)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	cc, err := c.newServeCache(cmd, opts)
	if err != nil {
		return err
	}
	// Namespace API cache entries apart from local CLI runs
	keyer := cache.NewScopedKeyer(nil, "api:")
	runner := pipeline.NewRunner(cc, keyer, c.Logger)
	defer runner.Close()

	srv := server.New(st, runner, c.Logger, server.Config{
		Addr:       opts.addr,
		Budget:     opts.budget,
		CycleLimit: opts.cycleLimit,
	})

	printInfo("Serving on %s", opts.addr)
	return srv.ListenAndServe(ctx)
}

// newStore selects the record store backend.
func (c *CLI) newStore(cmd *cobra.Command, opts *serveOpts) (store.Store, error) {
	if opts.mongoURI == "" {
		c.Logger.Debug("using in-memory record store")
		return store.NewMemoryStore(), nil
	}
	c.Logger.Info("connecting to mongodb", "db", opts.mongoDB)
	return store.NewMongoStore(cmd.Context(), opts.mongoURI, opts.mongoDB, "hierarchies")
}

// newServeCache selects the pipeline cache backend.
func (c *CLI) newServeCache(cmd *cobra.Command, opts *serveOpts) (cache.Cache, error) {
	if opts.redisAddr == "" {
		return newCache(opts.noCache)
	}
	c.Logger.Info("connecting to redis", "addr", opts.redisAddr)
	return cache.NewRedisCache(cmd.Context(), opts.redisAddr)
}
