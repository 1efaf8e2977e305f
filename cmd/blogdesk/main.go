// blogdesk runs the content desk server and offers a few offline tools for
// working with its SQLite archive.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/blogdesk"
	"github.com/eringen/blogdesk/analytics"
)

var version = "dev"

var (
	configFile string

	seed      bool
	staticDir string

	archivePath string
	period      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "blogdesk",
		Short: "Content desk for a retail blog",
		Long: `Blogdesk manages blog drafts for a retail site: search and filter them,
track content analytics, and draft new articles with a language model.

Configuration is read from a YAML file and BLOGDESK_* environment variables.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

Examples:
  # Serve with the demo blogs loaded
  BLOGDESK_LOGIN_PASSWORD=secret BLOGDESK_SESSION_SECRET=change-me blogdesk serve --seed

  # Serve with a config file
  blogdesk serve --config blogdesk.yaml`,
		RunE: runServe,
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "Load the demo blogs on start")
	cmd.Flags().StringVar(&staticDir, "static", "public", "Directory served under /public")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := blogdesk.LoadConfig(configFile)
	if err != nil {
		return err
	}
	if seed {
		cfg.Seed = true
	}

	app := blogdesk.New(cfg, blogdesk.ViewFuncs{}, blogdesk.WithStaticDir(staticDir))
	if err := app.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start()
	}()

	select {
	case err := <-errCh:
		if cerr := app.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		return err
	case <-ctx.Done():
	}

	app.Echo.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Shutdown(shutdownCtx)
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print content analytics for an archive as JSON",
		Long: `Print content analytics for an archive as JSON.

Examples:
  blogdesk stats --archive data/blogdesk.db --period year`,
		RunE: runStats,
	}
	cmd.Flags().StringVar(&archivePath, "archive", "", "Path to the SQLite archive (default: archive_path from config)")
	cmd.Flags().StringVar(&period, "period", "half", "Window for monthly counts (quarter, half, year)")
	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	path := archivePath
	if path == "" {
		cfg, err := blogdesk.LoadConfig(configFile)
		if err != nil {
			return err
		}
		path = cfg.ArchivePath
	}
	if path == "" {
		return errors.New("no archive: pass --archive or set archive_path")
	}

	archive, err := blogdesk.OpenArchive(path)
	if err != nil {
		return err
	}
	defer archive.Close()

	blogs, err := archive.Load(cmd.Context())
	if err != nil {
		return err
	}

	h := analytics.NewHandler(func() []analytics.Entry {
		return blogdesk.Entries(blogs)
	}, time.Now)
	summary, p := h.Summary(period)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(analytics.SummaryResponse{Summary: summary, Period: p})
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "blogdesk %s\n", version)
		},
	}
}
