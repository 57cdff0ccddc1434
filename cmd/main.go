package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "postboard/docs"
	"postboard/internal/auth"
	"postboard/internal/config"
	"postboard/internal/handlers"
	"postboard/internal/logger"
	"postboard/internal/repository"
	"postboard/internal/repository/db"
	"postboard/internal/server"
	"postboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

// @title                       postboard API
// @version                     1.0
// @description                 Token-authenticated posts with owner-gated mutations.
// @BasePath                    /
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        x-auth-token
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the root without a subcommand
// serves the API.
func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:          "postboard",
		Short:        "Token-authenticated posts API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfgFile)
		},
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default configs/config.yml)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context(), cfgFile)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations and exit",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigrate(cmd.Context(), cfgFile)
			},
		},
	)
	return root
}

func loadConfig(path string) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(viper.New(), path)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logger.Get(cfg.Log.Level), nil
}

func runMigrate(ctx context.Context, cfgFile string) error {
	cfg, log, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}

	conn, err := db.Open(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	if err := db.Migrate(ctx, conn, log.Named("migrate")); err != nil {
		return err
	}
	log.Infow("migrations applied", "db", cfg.DB.Path)
	return nil
}

func runServe(ctx context.Context, cfgFile string) error {
	cfg, log, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Log.Level != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := db.InitDB(ctx, cfg.DB.Path, log.Named("db"))
	if err != nil {
		log.Errorw("failed to init sqlite", "err", err, "path", cfg.DB.Path)
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	apiHandler, err := buildHandler(cfg, conn, log)
	if err != nil {
		return err
	}

	srv := &server.Server{}
	errCh := runHTTPServer(srv, cfg.Server.Port, apiHandler, log)
	return waitForShutdown(srv, errCh, log)
}

// buildHandler wires repositories, services and the HTTP handler.
func buildHandler(cfg *config.Config, conn *sql.DB, log *logger.Logger) (*handlers.Handler, error) {
	tokens, err := auth.NewTokenService(cfg.Auth.Secret, auth.WithTTL(cfg.Auth.TokenTTL))
	if err != nil {
		return nil, err
	}
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)

	repos := repository.NewRepository(conn)
	services := service.NewService(repos, tokens, hasher)
	return handlers.NewHandler(services, log.Named("http"),
		handlers.WithTokenTransport(cfg.Auth.Header, cfg.Auth.Scheme),
		handlers.WithFeedInterval(cfg.Feed.Interval),
	), nil
}

// runHTTPServer runs the HTTP server in a separate goroutine. The returned
// channel receives the error if the server stops on its own.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// waitForShutdown blocks until a termination signal or a server failure, then
// drains in-flight requests.
func waitForShutdown(srv *server.Server, errCh <-chan error, log *logger.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			log.Errorw("error starting server", "err", err)
			return err
		}
		return nil
	case sig := <-quit:
		log.Infow("shutting down server...", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
		return err
	}
	return nil
}
