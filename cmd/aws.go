package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kolja-aws/kolja/pkg/backup"
	"github.com/kolja-aws/kolja/pkg/installer"
	"github.com/kolja-aws/kolja/pkg/schema"
)

// awsCmd groups the commands that manage SSO sessions and generated profiles
// in the AWS config file.
var awsCmd = &cobra.Command{
	Use:   "aws",
	Short: "Manage AWS SSO sessions and generated profiles",
	Long:  `Write sso-session sections into your AWS config, log in through IAM Identity Center, and generate a profile for every account and role you can assume.`,
	Args:  cobra.NoArgs,
}

// newConfigInstaller builds the AWS config installer with the lock timeout
// and backup retention from kolja.yaml.
func newConfigInstaller(settings *schema.Settings) *installer.ConfigInstaller {
	return installer.NewConfigInstaller(
		settings.AWSConfig,
		installer.WithLockTimeout(settings.LockTimeout),
		installer.WithBackupManager(backup.NewManager(backup.WithKeep(settings.BackupKeep))),
	)
}

func init() {
	RootCmd.AddCommand(awsCmd)
}
