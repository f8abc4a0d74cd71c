package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aussiebroadwan/userreport/internal/report/app"
	"github.com/spf13/cobra"
)

func main() {
	cfg := app.LoadConfig()

	rootCmd := &cobra.Command{
		Use:   "userreport",
		Short: "Per-user activity report for Stack Overflow for Teams",
		Long: "Fetches users, questions, answers, comments, articles, tags and reputation\n" +
			"history, joins them per user, and writes a CSV of activity metrics.",
		Example: `  userreport --url "https://stackoverflowteams.com/c/TEAM-NAME" --token "YOUR_TOKEN"
  userreport --url "https://SUBDOMAIN.stackenterprise.co" --key "YOUR_KEY" --token "YOUR_TOKEN"
  userreport --no-api --start-date 2024-01-01 --end-date 2024-07-01
  userreport --snapshot latest --start-date 2024-01-01`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, a *app.Application) error {
				_, err := a.Run(ctx)
				return err
			})
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&cfg.URL, "url", cfg.URL, "base URL of the team or instance (env SO4T_URL)")
	flags.StringVar(&cfg.Token, "token", cfg.Token, "API access token (env SO4T_TOKEN)")
	flags.StringVar(&cfg.Key, "key", cfg.Key, "API key, required for Enterprise (env SO4T_KEY)")
	flags.StringVar(&cfg.StartDate, "start-date", "", "only count activity after this date, YYYY-MM-DD")
	flags.StringVar(&cfg.EndDate, "end-date", "", "only count activity before this date, YYYY-MM-DD")
	flags.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "directory for the CSV report (env REPORT_OUTPUT_DIR)")
	flags.BoolVar(&cfg.NoAPI, "no-api", false, "load data from the JSON files in the data directory instead of the API")
	flags.StringVar(&cfg.Snapshot, "snapshot", "", `rebuild from a stored snapshot: "latest" or a snapshot id`)
	flags.IntVar(&cfg.Top, "top", cfg.Top, "rows in the console summary, 0 for all (env REPORT_TOP)")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for JSON dumps (env REPORT_DATA_DIR)")
	persistent.StringVar(&cfg.DatabaseFile, "db", cfg.DatabaseFile, "history database file (env REPORT_DATABASE_FILE)")

	var limit int
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List previous report runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, a *app.Application) error {
				return a.History(ctx, limit)
			})
		},
	}
	historyCmd.Flags().IntVar(&limit, "limit", 20, "number of runs to show, 0 for all")

	snapshotsCmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List stored data snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, a *app.Application) error {
				return a.Snapshots(ctx)
			})
		},
	}

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(snapshotsCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("userreport: %v", err)
	}
}

// withApp builds the application from the flag-adjusted config, runs fn with
// a context cancelled on SIGINT/SIGTERM, and closes the application.
func withApp(cmd *cobra.Command, cfg app.Config, fn func(context.Context, *app.Application) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	return fn(ctx, a)
}
