// Command printctl tareas de operación sobre la base de datos de JPrint.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/jprint-api/internal/infrastructure/postgres"
	"github.com/jhoicas/jprint-api/pkg/config"
	"github.com/jhoicas/jprint-api/pkg/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "printctl",
	Short:         "Operación de JPrint: migraciones, cuenta del vendedor y usuarios",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedVendorCmd)
	rootCmd.AddCommand(usersCmd)
}

// env agrupa lo que necesita cada comando.
type env struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
	db   *postgres.Adapter
}

// boot carga la configuración y abre el pool. El llamador cierra con close().
func boot(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Env: "development", Level: cfg.App.LogLevel, Output: os.Stderr})
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return &env{cfg: cfg, log: log, pool: pool, db: postgres.NewAdapter(pool)}, nil
}

func (e *env) close() { e.pool.Close() }
