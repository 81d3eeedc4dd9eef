// @title Llama Store API
// @version 1.0
// @description The llama store API. Browse, create and update llamas and their pictures.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rohits-web03/llamastore/internal/config"
	"github.com/rohits-web03/llamastore/internal/logger"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootCommand creates the CLI. Configuration comes from the environment and
// .env; flags override it.
func rootCommand() *cobra.Command {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:           "llamastore",
		Short:         "Llama Store API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfg.DataRoot, "data-root", cfg.DataRoot, "Directory holding the database and pictures")
	rootCmd.PersistentFlags().StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "Database driver: sqlite, postgres")
	rootCmd.PersistentFlags().StringVar(&cfg.DBURL, "db-url", cfg.DBURL, "Database DSN (defaults to <data-root>/sql_app.db)")
	rootCmd.PersistentFlags().StringVar(&cfg.StorageBackend, "storage", cfg.StorageBackend, "Picture storage: local, r2")

	rootCmd.AddCommand(serveCommand(&cfg), migrateCommand(&cfg))
	return rootCmd
}

func newLogger(cfg *config.Config) (*zap.SugaredLogger, func(), error) {
	lg, err := logger.Init(logger.NewConfig(cfg.LogLevel, cfg.LogDev))
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return lg.Sugar(), func() { _ = lg.Sync() }, nil
}
