// Package commands implements the CLI commands for markdownify.
package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/markdownify/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "markdownify",
	Short: "Convert HTML to Markdown",
	Long: `markdownify converts HTML documents to Markdown.

Input can be a file, an http(s) URL, or stdin. Conversion options can be
given as flags, in .markdownify.yaml under a "convert:" section, or as
MARKDOWNIFY_CONVERT_* environment variables.

Examples:
  # Convert a file
  markdownify convert page.html

  # Convert a URL, keeping only the article, with ATX headings
  markdownify convert https://example.com/post --select article \
      --heading-style atx

  # Strip page furniture first and report the result's structure
  curl -s https://example.com | markdownify convert --prune --stats text

  # Compare against a second converter
  markdownify compare page.html`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default ./.markdownify.yaml or $HOME/.markdownify.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON lines")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
}

func initConfig() {
	initLogger()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".markdownify")
		viper.SetConfigType("yaml")
	}

	// MARKDOWNIFY_CONVERT_HEADING_STYLE=atx maps to convert.heading_style.
	viper.SetEnvPrefix("MARKDOWNIFY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logger.Warn("failed to read config file", "error", err)
		}
		return
	}

	// The file may change the log level.
	initLogger()
	logger.Debug("using config file", "path", viper.ConfigFileUsed())
}

func initLogger() {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
	})
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("command failed", "error", err)
	}
	return err
}
