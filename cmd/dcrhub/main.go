// Command dcrhub fetches, filters and renders horse-race results and racecards.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dcrhub/internal/config"
	"dcrhub/internal/crawler"
	"dcrhub/internal/logger"
	"dcrhub/internal/session"
)

var (
	cfg        *config.Config
	log        *logger.Logger
	configPath string
	logLevel   string
)

var errUnknownFormat = errors.New("unknown output format")

// skipConfig marks commands that must run without a loadable config.
const skipConfig = "skip-config"

var rootCmd = &cobra.Command{
	Use:           "dcrhub",
	Short:         "Browse horse-race results and racecards",
	Long:          "Fetches the results and racecards JSON documents, normalizes loosely-structured records, filters them by date, course and free text, and renders them as HTML, markdown or an interactive terminal browser.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Annotations[skipConfig] == "true" {
			cfg = config.Default()
			log = logger.NewNop()

			return nil
		}

		c, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		cfg = c

		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}

		log = logger.NewLoggerWithFormat(cfg.Logging.Level, cfg.Logging.Format)
		log.Debug("Configuration loaded", "config", cfg.String())

		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./dcrhub.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newSession builds a session fetching with the configured client settings.
func newSession(l *logger.Logger) *session.Session {
	client := crawler.NewClientWithDeps(crawler.NewScraperWithConfig(cfg.Fetch))

	return session.New(client, l)
}

// sourceURL returns the --source flag when set, else the configured URL.
func sourceURL(flag string, kind config.SourceKind) (string, error) {
	if flag != "" {
		return flag, nil
	}

	return cfg.SourceURL(kind)
}

// pageURL returns the --url flag when set, else the configured page URL.
func pageURL(flag string) string {
	if flag != "" {
		return flag
	}

	return cfg.Page.URL
}
