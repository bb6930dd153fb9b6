// Package cmd holds the sentinel CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"OptionSentinel/internal/config"
	"OptionSentinel/internal/logger"
)

var (
	cfgFile string
	verbose bool

	// cfg is loaded once per invocation by initConfig.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sentinel",
	Short: "OptionSentinel - options strategy scanner for Indian F&O",
	Long: `OptionSentinel - options strategy scanner for Indian F&O

Commands:
    analyze SYMBOL...   analyse instruments and print the report
    scan                run one full scan and record it
    serve               run the cron scanner and the Telegram bot
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	def := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		def = v
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", def, "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(serveCmd)
}

func initConfig() error {
	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && verbose {
		fmt.Fprintln(os.Stderr, "Warning: .env file not found, using environment variables")
	}

	c, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if verbose {
		c.Log.Level = "debug"
	}
	if err := logger.Init(logger.Config{
		Level:         c.Log.Level,
		Format:        c.Log.Format,
		FileEnabled:   c.Log.FileEnabled,
		FilePath:      c.Log.FilePath,
		RotationSize:  c.Log.RotationSize,
		RetentionDays: c.Log.RetentionDays,
	}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	cfg = c
	log.Debug().Str("config", cfgFile).Msg("configuration loaded")
	return nil
}
