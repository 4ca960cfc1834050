package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	errUtils "github.com/kolja-aws/kolja/errors"
	"github.com/kolja-aws/kolja/pkg/awsconfig"
	"github.com/kolja-aws/kolja/pkg/config"
	log "github.com/kolja-aws/kolja/pkg/logger"
)

// awsSetCmd writes sso-session sections from kolja.yaml into the AWS config.
var awsSetCmd = &cobra.Command{
	Use:   "set [session...]",
	Short: "Write sso-session sections into the AWS config",
	Long: `Writes the named SSO sessions from kolja.yaml into the AWS config file as
sso-session sections. Without arguments, lists the sessions available to set.`,
	Example: "kolja aws set mycompany\nkolja aws set mycompany mycompany-cn",
	RunE:    executeAwsSetCommand,
}

func executeAwsSetCommand(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	available := settings.SessionNames()
	if len(available) == 0 {
		return errUtils.Build(errUtils.ErrNoSessions).
			WithHint("Define sessions in kolja.yaml under sso_sessions").
			Err()
	}

	if len(args) == 0 {
		fmt.Println("Available SSO sessions:")
		for _, name := range available {
			fmt.Printf("  - %s\n", name)
		}
		fmt.Println("\nRun `kolja aws set <session>` to write one into the AWS config.")
		return nil
	}

	desired := make([]awsconfig.DesiredSection, 0, len(args))
	for _, name := range args {
		sessionCfg, ok := settings.SSOSessions[name]
		if !ok {
			return errUtils.Build(fmt.Errorf("%w: %q", errUtils.ErrUnknownSession, name)).
				WithHintf("Sessions configured in kolja.yaml: %s", strings.Join(available, ", ")).
				Err()
		}
		desired = append(desired, awsconfig.SessionSection(name, sessionCfg))
	}

	result, err := newConfigInstaller(settings).Install(desired)
	if err != nil {
		return err
	}

	if !result.Changed {
		log.Info("SSO sessions already up to date", "file", settings.AWSConfig)
		return nil
	}
	printChangeSummary(result)
	return nil
}

func init() {
	awsCmd.AddCommand(awsSetCmd)
}
