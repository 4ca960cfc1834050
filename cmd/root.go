package cmd

import (
	"github.com/spf13/cobra"

	log "github.com/kolja-aws/kolja/pkg/logger"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "kolja",
	Short: "Keep AWS SSO sessions and profiles in sync",
	Long: `Kolja generates AWS config profiles from your IAM Identity Center sessions
and installs a shell helper for switching between them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		levelFlag, err := cmd.Flags().GetString("logs-level")
		if err != nil {
			return err
		}
		level, err := log.ParseLogLevel(levelFlag)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	},
}

// Execute adds all child commands to the root command and runs it. Called by
// main.main(). Errors come back for central formatting, never printed here.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().String("logs-level", "Info", "Log level. Supported log levels are Trace, Debug, Info, Warning, Off")
}
