// seed_users registra cuentas iniciales (cuenta + perfil) desde un archivo YAML.
//
// Uso: go run ./cmd/seed_users --file config/accounts.yaml [--migrate]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhoicas/agrilink-web/internal/application/auth"
	"github.com/jhoicas/agrilink-web/internal/infrastructure/backend"
	"github.com/jhoicas/agrilink-web/internal/infrastructure/seed"
	"github.com/jhoicas/agrilink-web/pkg/config"
	"github.com/jhoicas/agrilink-web/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		file    string
		migrate bool
	)
	cmd := &cobra.Command{
		Use:           "seed_users",
		Short:         "Registra cuentas iniciales de AgriLink",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			if file == "" {
				file = cfg.Seed.AccountsPath
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
			return run(cmd.Context(), cfg, file, migrate, log)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "archivo YAML de cuentas (por defecto SEED_ACCOUNTS_PATH)")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "aplicar el esquema antes de sembrar (solo postgres)")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, file string, migrate bool, log *logger.Logger) error {
	accounts, err := seed.LoadAccounts(file)
	if err != nil {
		return err
	}

	be, err := backend.Open(ctx, cfg, migrate, log)
	if err != nil {
		return err
	}
	defer be.Close()

	uc := auth.NewAuthUseCase(be.Identity, be.Store, auth.Config{ProfileCollection: cfg.Identity.ProfileCollection})
	res, err := seed.NewSeeder(uc, log).Run(ctx, accounts)
	log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Str("file", file).Msg("semillas procesadas")
	return err
}
