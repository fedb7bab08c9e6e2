package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/hellonotes/internal/bootstrap"
	"github.com/dropDatabas3/hellonotes/internal/config"
	"github.com/dropDatabas3/hellonotes/internal/http/server"
	"github.com/dropDatabas3/hellonotes/internal/jwt"
	"github.com/dropDatabas3/hellonotes/internal/observability/logger"
	"github.com/dropDatabas3/hellonotes/internal/security/password"
	"github.com/dropDatabas3/hellonotes/internal/store"
)

// withStore abre el store configurado, corre fn y lo cierra.
func withStore(cfg *config.Config, fn func(ctx context.Context, conn store.AdapterConnection) error) error {
	ctx := logger.ToContext(context.Background(), logger.L())
	conn, err := server.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(ctx, conn)
}

func newMigrateCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cfg(), server.Migrate)
		},
	}
}

func newSeedCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Crea los tenants y usuarios de demo que falten",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			if c.Seed.Password == "" {
				return fmt.Errorf("seed: password required (SEED_PASSWORD)")
			}
			return withStore(c, func(ctx context.Context, conn store.AdapterConnection) error {
				res, err := bootstrap.Seed(ctx, bootstrap.SeedConfig{
					Tenants:  conn.Tenants(),
					Users:    conn.Users(),
					Password: c.Seed.Password,
					Params:   password.Default,
				})
				if err != nil {
					return err
				}
				fmt.Printf("tenants created: %d, users created: %d\n", res.TenantsCreated, res.UsersCreated)
				return nil
			})
		},
	}
}

func newTokenCmd(cfg func() *config.Config) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un access token para un usuario existente (debug)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			if email == "" {
				return fmt.Errorf("--email es requerido")
			}
			if c.JWT.Secret == "" {
				return fmt.Errorf("jwt.secret: required (JWT_SECRET)")
			}
			return withStore(c, func(ctx context.Context, conn store.AdapterConnection) error {
				u, err := conn.Users().GetByEmail(ctx, email)
				if err != nil {
					return fmt.Errorf("user %s: %w", email, err)
				}
				iss := jwt.NewIssuer(c.JWT.Issuer, []byte(c.JWT.Secret), c.AccessTTL())
				tok, exp, err := iss.Issue(jwt.Claims{UserID: u.ID, TenantID: u.TenantID, Role: u.Role})
				if err != nil {
					return err
				}
				fmt.Println(tok)
				logger.L().Debug("token issued", logger.UserID(u.ID), logger.String("expires", exp.String()))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email del usuario")
	return cmd
}
