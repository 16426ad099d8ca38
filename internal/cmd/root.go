package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tfs2006/the-zeitgeist-pet/internal/config"
	"github.com/tfs2006/the-zeitgeist-pet/internal/logging"
)

// appConfig is loaded once per invocation, before any subcommand runs.
var appConfig *config.AppConfig

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"log-level":  "log_level",
	"log-format": "log_format",
	"port":       "port",
	"store":      "interaction_store",
	"db":         "interaction_db_path",
}

var rootCmd = &cobra.Command{
	Use:   "zeitgeist-pet",
	Short: "A digital pet whose mood is the mood of the internet",
	Long: `zeitgeist-pet aggregates a handful of public APIs (weather, markets, news,
space, earthquakes and more) into a single vibe score and serves the resulting
entity over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v := config.New()
		for name, key := range flagKeys {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return err
				}
			}
		}

		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		if err := logging.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
			return err
		}
		appConfig = cfg
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json, logfmt)")
	rootCmd.PersistentFlags().String("store", "memory", "Interaction store (memory, sqlite)")
	rootCmd.PersistentFlags().String("db", "zeitgeist.db", "SQLite path when --store=sqlite")
}
