package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandol-bot/sandol/internal/config"
	"github.com/sandol-bot/sandol/internal/store"
	"github.com/sandol-bot/sandol/internal/version"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show Sandol status and configuration summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sandol %s (commit %s)\n\n", version.Version, version.Commit)

			fmt.Fprintf(out, "Config:  %s\n", paths.Config)
			fmt.Fprintf(out, "Data:    %s\n", paths.Data)
			fmt.Fprintln(out)

			cfg, err := config.Load(paths.Config)
			if err != nil {
				fmt.Fprintf(out, "Config:  error loading: %v\n", err)
				return nil
			}
			if _, err := os.Stat(paths.Config); os.IsNotExist(err) {
				fmt.Fprintln(out, "Config:  not found (using defaults)")
			}

			auth := "off"
			if cfg.Skill.Auth.Token != "" {
				auth = "header " + cfg.Skill.Auth.Header
			}
			fmt.Fprintf(out, "Server:  port=%d bind=%s auth=%s strictSchema=%v\n",
				cfg.Server.Port, cfg.Server.Bind, auth, cfg.Skill.StrictSchema)
			fmt.Fprintf(out, "Logging: level=%s style=%s\n", cfg.Logging.Level, cfg.Logging.ConsoleStyle)

			dbPath := paths.DBPath(cfg)
			if _, err := os.Stat(dbPath); err != nil {
				fmt.Fprintf(out, "Store:   %s (not created yet)\n", dbPath)
			} else if db, err := store.Open(dbPath, log); err != nil {
				fmt.Fprintf(out, "Store:   %s (error: %v)\n", dbPath, err)
			} else {
				defer db.Close()
				ctx := context.Background()
				restaurants, rerr := db.ListRestaurants(ctx)
				pending, perr := db.ListRegistrations(ctx)
				if rerr != nil || perr != nil {
					fmt.Fprintf(out, "Store:   %s (error: %v)\n", dbPath, firstErr(rerr, perr))
				} else {
					fmt.Fprintf(out, "Store:   %s restaurants=%d pending=%d\n", dbPath, len(restaurants), len(pending))
				}
			}

			if web := cfg.Skills.CafeteriaWeb; web != nil {
				fmt.Fprintf(out, "Web:     %s <%s>\n", web.Title, web.URL)
			}
			if len(cfg.Skills.MapURLs) > 0 {
				fmt.Fprintf(out, "Maps:    %d restaurant(s)\n", len(cfg.Skills.MapURLs))
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				fmt.Fprintf(out, "\nValidation issues (%d):\n", len(issues))
				for _, issue := range issues {
					fmt.Fprintf(out, "  - %s: %s\n", issue.Path, issue.Message)
				}
			}

			return nil
		},
	}

	return cmd
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
