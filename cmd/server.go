package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/farmhouse/internal/application/usecases"
	"github.com/example/farmhouse/internal/domain/booking"
	"github.com/example/farmhouse/internal/infrastructure/config"
	"github.com/example/farmhouse/internal/infrastructure/memstore"
	"github.com/example/farmhouse/internal/infrastructure/postgres"
	"github.com/example/farmhouse/internal/interfaces/web"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newServerCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the reservations web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				level = zerolog.InfoLevel
			}
			log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			var store booking.Store
			backend := "in-memory (demo only, lost on restart)"
			if cfg.UsesDatabase() {
				pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
				if err != nil {
					return fmt.Errorf("open database: %w", err)
				}
				defer pool.Close()
				if err := pool.Ping(ctx); err != nil {
					return fmt.Errorf("db ping: %w", err)
				}
				if migrateUp {
					if err := postgres.Migrate(ctx, pool); err != nil {
						return fmt.Errorf("migrate: %w", err)
					}
				}
				store = postgres.NewReservationRepo(pool)
				backend = "postgres (shared)"
			} else {
				store = memstore.New()
			}

			rooms := cfg.Registry()
			svc := usecases.ReservationService{
				Store: store,
				Rooms: rooms,
				Log:   log.With().Str("component", "reservations").Logger(),
			}

			sessions := web.NewSessionManager(cfg.CookieHashKey, cfg.CookieBlockKey)
			tmpl, err := web.ParseTemplates()
			if err != nil {
				return err
			}

			srv := web.New(cfg.ListenAddr, sessions, svc, rooms,
				[]byte(cfg.GatePasswordHash), tmpl, backend,
				log.With().Str("component", "web").Logger())
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")
	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}
