package cli

import (
	"cmp"
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/onion/internal/server"
	"github.com/matzehuels/onion/pkg/cache"
	"github.com/matzehuels/onion/pkg/observability"
	"github.com/matzehuels/onion/pkg/pipeline"
	"github.com/matzehuels/onion/pkg/store"
)

// Server defaults and environment variables.
const (
	defaultAddr    = ":8080"
	defaultMongoDB = "onion"
	redisKeyPrefix = "onion:"

	envAddr     = "ONION_ADDR"
	envRedisURL = "ONION_REDIS_URL"
	envMongoURI = "ONION_MONGO_URI"
	envMongoDB  = "ONION_MONGO_DB"
)

// serveOpts holds resolved settings for the serve command.
type serveOpts struct {
	addr     string
	redisURL string
	mongoURI string
	mongoDB  string
	noCache  bool
}

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags   serveOpts
		envFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the peeling HTTP API",
		Long: `Serve the peeling HTTP API.

Settings are taken from flags, then from the environment (ONION_ADDR,
ONION_REDIS_URL, ONION_MONGO_URI, ONION_MONGO_DB, optionally loaded from a
.env file), then from the [server] section of the config file.

Without a Redis URL results are cached on disk; without a MongoDB URI point
sets are kept in memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnv(envFile); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), c.serveOptions(cmd, flags))
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (default "+defaultAddr+")")
	cmd.Flags().StringVar(&flags.redisURL, "redis-url", "", "Redis URL for the result cache")
	cmd.Flags().StringVar(&flags.mongoURI, "mongo-uri", "", "MongoDB URI for stored point sets")
	cmd.Flags().StringVar(&flags.mongoDB, "mongo-db", "", "MongoDB database (default "+defaultMongoDB+")")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load if present")

	return cmd
}

// loadEnv loads path into the environment without overriding variables that
// are already set. A missing file is not an error.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// serveOptions resolves flags over environment over config over defaults.
func (c *CLI) serveOptions(cmd *cobra.Command, flags serveOpts) serveOpts {
	cfg := c.config.Server
	return serveOpts{
		addr:     cmp.Or(flags.addr, os.Getenv(envAddr), cfg.Addr, defaultAddr),
		redisURL: cmp.Or(flags.redisURL, os.Getenv(envRedisURL), cfg.RedisURL),
		mongoURI: cmp.Or(flags.mongoURI, os.Getenv(envMongoURI), cfg.MongoURI),
		mongoDB:  cmp.Or(flags.mongoDB, os.Getenv(envMongoDB), cfg.MongoDB, defaultMongoDB),
		noCache:  unlessSet(cmd, "no-cache", flags.noCache, c.config.NoCache),
	}
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	resultCache, keyer, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(resultCache, keyer, c.Logger)
	defer runner.Close()

	st, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close(context.WithoutCancel(ctx))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	observability.Install(observability.NewPrometheus(reg))
	defer observability.Reset()

	srv := server.New(server.Config{
		Runner:   runner,
		Store:    st,
		Logger:   c.Logger,
		Gatherer: reg,
	})
	printInfo("Serving on %s", StyleHighlight.Render(opts.addr))
	return srv.ListenAndServe(ctx, opts.addr)
}

func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, cache.Keyer, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil, nil
	case opts.redisURL != "":
		rc, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache")
		return rc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), redisKeyPrefix), nil
	default:
		fc, err := newCache(false)
		if err != nil {
			return nil, nil, err
		}
		return fc, nil, nil
	}
}

func (c *CLI) serveStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	if opts.mongoURI == "" {
		c.Logger.Info("using in-memory point set store")
		return store.NewMemoryStore(), nil
	}
	ms, err := store.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	c.Logger.Info("using mongodb store", "database", opts.mongoDB)
	return ms, nil
}
