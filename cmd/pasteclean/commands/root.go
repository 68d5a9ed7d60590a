// Package commands implements the CLI commands for pasteclean.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/pasteclean/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "pasteclean",
	Short: "Normalize rich text pasted from word processors into clean markup",
	Long: `Pasteclean turns the HTML that word processors and office suites put on
the clipboard into a small semantic vocabulary: headings, paragraphs, lists,
basic emphasis and links. Styling, metadata and vendor namespaces are dropped;
text, structure and link targets are kept.

Examples:
  # Clean the clipboard and print the result
  pasteclean clean --clipboard

  # Clean a saved export and write Markdown
  pasteclean clean export.html --format markdown -o notes.md

  # Clean the clipboard in place
  pasteclean clean --clipboard --to-clipboard

  # Show how content would be routed
  pasteclean classify export.html`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.pasteclean.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "suppress notices and progress output")
	flags.String("log-level", "", "log level: debug, info, warn, error (overrides --debug/--quiet)")
	flags.Bool("log-json", false, "log as JSON")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("debug", flags.Lookup("debug"))
	_ = viper.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.json", flags.Lookup("log-json"))

	setDefaults(viper.GetViper())
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".pasteclean")
		viper.SetConfigType("yaml")
	}

	// Environment variables: PASTECLEAN_FORMAT, PASTECLEAN_CLEANER_DETECT_HEADINGS, ...
	viper.SetEnvPrefix("PASTECLEAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

func initLogger() error {
	return logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		Level: viper.GetString("log.level"),
		JSON:  viper.GetBool("log.json"),
	})
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(cmd *cobra.Command, format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
	}
}
