package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shifttrack/cmd/cli/commands"
	"github.com/jakechorley/shifttrack/internal/config"
	"github.com/jakechorley/shifttrack/pkg/clients/geoclient"
	"github.com/jakechorley/shifttrack/pkg/clients/webhookclient"
	"github.com/jakechorley/shifttrack/pkg/core/services"
	"github.com/jakechorley/shifttrack/pkg/db"
	"github.com/jakechorley/shifttrack/pkg/locale"
	"github.com/jakechorley/shifttrack/pkg/metrics"
	"github.com/jakechorley/shifttrack/pkg/postgres"
	"github.com/jakechorley/shifttrack/pkg/redisstore"
	"github.com/jakechorley/shifttrack/pkg/session"
	"github.com/jakechorley/shifttrack/pkg/sqlite"
	"github.com/jakechorley/shifttrack/pkg/utils/logging"
)

func main() {
	var env string
	app := &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "shifttrack",
		Short: "ShiftTrack - Clock in, clock out and review shift reports",
		Long: `A CLI for recording work shifts against the ShiftTrack webhooks, with
administrator reports, exports and user management.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app, env)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			shutdown(app)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (selects shifttrack_config.<env>.yaml)")

	rootCmd.AddCommand(commands.LoginCmd(app))
	rootCmd.AddCommand(commands.LogoutCmd(app))
	rootCmd.AddCommand(commands.RegisterCmd(app))
	rootCmd.AddCommand(commands.ProfileCmd(app))
	rootCmd.AddCommand(commands.CheckInCmd(app))
	rootCmd.AddCommand(commands.CheckOutCmd(app))
	rootCmd.AddCommand(commands.StatusCmd(app))
	rootCmd.AddCommand(commands.ReportsCmd(app))
	rootCmd.AddCommand(commands.UsersCmd(app))
	rootCmd.AddCommand(commands.ScheduleCmd(app))
	rootCmd.AddCommand(commands.EndpointsCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp loads configuration and wires the clients, session store and
// formatters into app
func initApp(app *commands.AppContext, env string) error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger, err = logging.InitLogger(env, app.Cfg.LogsDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger.Debug("Configuration loaded", zap.String("environment", env))

	app.Metrics = metrics.New()

	clientCfg := webhookclient.Config{
		BaseURL: app.Cfg.WebhookBaseURL,
		Paths:   app.Cfg.EndpointPaths(),
		Timeout: app.Cfg.RequestTimeout,
	}
	if auth := app.Cfg.WebhookAuth; auth != nil {
		app.Logger.Debug("Webhook calls use client credentials", zap.String("token_url", auth.TokenURL))
		clientCfg.HTTPClient = webhookclient.NewAuthenticatedHTTPClient(app.Ctx, webhookclient.ClientCredentials{
			TokenURL:     auth.TokenURL,
			ClientID:     auth.ClientID,
			ClientSecret: auth.ClientSecret,
			Scopes:       auth.Scopes,
		}, app.Cfg.RequestTimeout)
	}
	client, err := webhookclient.NewClient(clientCfg, app.Metrics, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to create webhook client: %w", err)
	}
	app.Client = client

	app.Endpoints = make(map[string]string, len(webhookclient.AllEndpoints))
	for _, endpoint := range webhookclient.AllEndpoints {
		app.Endpoints[string(endpoint)] = client.URL(endpoint)
	}

	app.Store, err = openStore(app.Ctx, app.Cfg, env, app.Logger)
	if err != nil {
		return err
	}

	app.Session = session.New(app.Store, app.Logger)
	if err := app.Session.Load(app.Ctx); err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if _, err := services.RepairSession(app.Ctx, app.Client, app.Session, app.Logger); err != nil {
		app.Logger.Warn("Failed to repair session", zap.Error(err))
	}

	app.Display, err = locale.New(app.Cfg.Language, app.Cfg.Timezone)
	if err != nil {
		return fmt.Errorf("failed to create formatter: %w", err)
	}

	app.Locator = newLocator(app.Cfg.Geolocation)
	app.NewPublisher = commands.SheetsPublisher(app)

	return nil
}

// openStore opens the configured session backend
func openStore(ctx context.Context, cfg *config.Config, env string, logger *zap.Logger) (db.KeyValueStore, error) {
	backend := cfg.Session.Backend
	logger.Debug("Opening session store", zap.String("backend", backend))

	switch backend {
	case config.BackendMemory:
		return db.NewMemoryStore(), nil

	case config.BackendSQLite:
		dir, err := cfg.SessionDir()
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create session directory: %w", err)
		}
		store, err := sqlite.Open(filepath.Join(dir, "session.db"))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite session store: %w", err)
		}
		return store, nil

	case config.BackendPostgres:
		store, err := postgres.NewDB(ctx, cfg.Session.DSN, env)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := store.RunMigrations(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to migrate postgres session store: %w", err)
		}
		return store, nil

	case config.BackendRedis:
		store, err := redisstore.New(ctx, redisstore.Options{
			Addr:      cfg.Session.RedisAddr,
			Password:  cfg.Session.RedisPassword,
			DB:        cfg.Session.RedisDB,
			Namespace: env,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return store, nil
	}

	dir, err := cfg.SessionDir()
	if err != nil {
		return nil, err
	}
	store, err := db.NewFileStore(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open session directory: %w", err)
	}
	return store, nil
}

func newLocator(cfg config.GeolocationConfig) geoclient.Locator {
	switch cfg.Mode {
	case config.GeoStatic:
		return geoclient.StaticLocator{Lat: *cfg.Latitude, Lng: *cfg.Longitude}
	case config.GeoIP:
		return geoclient.NewIPLocator(cfg.LookupURL, nil)
	}
	return geoclient.NoneLocator{}
}

func shutdown(app *commands.AppContext) {
	if app.Logger == nil {
		return
	}
	if path := app.Cfg.MetricsTextfile; path != "" && app.Metrics != nil {
		if err := app.Metrics.WriteTextfile(path); err != nil {
			app.Logger.Warn("Failed to write metrics", zap.String("path", path), zap.Error(err))
		}
	}
	if app.Store != nil {
		if err := app.Store.Close(); err != nil {
			app.Logger.Warn("Failed to close session store", zap.Error(err))
		}
	}
	_ = app.Logger.Sync()
}
