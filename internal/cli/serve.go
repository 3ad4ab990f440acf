package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sandol-bot/sandol/internal/skill"
	"github.com/sandol-bot/sandol/internal/skills"
	"github.com/sandol-bot/sandol/internal/store"
)

func newServeCmd() *cobra.Command {
	var (
		port   int
		bind   string
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the skill server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			if bind != "" {
				cfg.Server.Bind = bind
			}
			if dbPath != "" {
				cfg.Store.Path = dbPath
			}

			if err := paths.EnsureDirs(); err != nil {
				return fmt.Errorf("creating data directories: %w", err)
			}
			db, err := store.Open(paths.DBPath(cfg), log)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer db.Close()

			srv, err := skill.New(cfg, log, skill.WithHealthCheck(db.Ping))
			if err != nil {
				return err
			}
			skills.New(db, cfg.Skills, log).Register(srv)

			// Block until SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "override server port")
	cmd.Flags().StringVar(&bind, "bind", "", "override bind mode (loopback, lan, custom)")
	cmd.Flags().StringVar(&dbPath, "db", "", "override database path")

	return cmd
}
