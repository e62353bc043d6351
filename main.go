package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

var (
	verbose   bool
	envFile   string
	port      string
	dbPath    string
	fieldFile string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site with a contact relay",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			if err := godotenv.Overload(envFile); err != nil {
				return fmt.Errorf("load env file: %w", err)
			}
		}

		config := zap.NewProductionConfig()
		if os.Getenv("GIN_MODE") == gin.DebugMode {
			config = zap.NewDevelopmentConfig()
		}
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site (default)",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "extra .env file to load")
	rootCmd.PersistentFlags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&fieldFile, "field", "", "background field YAML (overrides FIELD_FILE)")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := LoadConfig()
	if port != "" {
		cfg.Port = port
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if fieldFile != "" {
		cfg.FieldFile = fieldFile
	}
	gin.SetMode(cfg.GinMode)

	store, err := OpenStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	mailer := newMailer(cfg, logger)
	app, err := NewApp(cfg, logger, store, mailer)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("mailer", mailer.Name()),
			zap.Int("tiles", len(app.field.Snippets)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		app.retentionLoop(ctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}
