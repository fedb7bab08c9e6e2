// Command hellonotes corre el servicio de notas multi-tenant y sus tareas de operación.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/hellonotes/internal/config"
	"github.com/dropDatabas3/hellonotes/internal/observability/logger"
)

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	// .env (opcional) - prioridad .env.dev > .env
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.dev")

	var configPath = envOr("CONFIG_PATH", "configs/config.yaml")
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "hellonotes",
		Short:         "Servicio de notas multi-tenant",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			cfg = c
			logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "hellonotes"})
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", configPath, "Path al YAML de config (env CONFIG_PATH)")

	get := func() *config.Config { return cfg }
	root.AddCommand(
		newServeCmd(get),
		newMigrateCmd(get),
		newSeedCmd(get),
		newTokenCmd(get),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
