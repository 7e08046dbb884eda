// Package commands implements the supportflow CLI.
package commands

import (
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var (
	configPath string
	logLevel   string
	logPretty  bool
)

var rootCmd = &cobra.Command{
	Use:   "supportflow",
	Short: "SupportFlow - multi-agent customer support router",
	Long: `SupportFlow routes customer support conversations through specialized
role handlers: intent classification, retention negotiation with offer
authorization, billing and technical routing, and cancellation processing.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file (defaults apply when omitted)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "pretty", false, "human-readable console log output")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(replayCmd)
}
