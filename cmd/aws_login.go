package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	errUtils "github.com/kolja-aws/kolja/errors"
	"github.com/kolja-aws/kolja/pkg/awsconfig"
	"github.com/kolja-aws/kolja/pkg/config"
	log "github.com/kolja-aws/kolja/pkg/logger"
	"github.com/kolja-aws/kolja/pkg/sso"
)

// awsLoginCmd runs `aws sso login` for each configured session.
var awsLoginCmd = &cobra.Command{
	Use:   "login [session...]",
	Short: "Log in to SSO sessions through the AWS CLI",
	Long: `Runs the AWS CLI device authorization flow for each sso-session in the AWS
config, or only for the named ones. A failed session does not stop the rest.`,
	Example: "kolja aws login\nkolja aws login mycompany",
	RunE:    executeAwsLoginCommand,
}

func executeAwsLoginCommand(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	configured, err := awsconfig.LoadSessionNames(settings.AWSConfig)
	if err != nil {
		return err
	}
	if len(configured) == 0 {
		return errUtils.Build(errUtils.ErrNoSessions).
			WithContext("file", settings.AWSConfig).
			WithHint("Run `kolja aws set <session>` first").
			Err()
	}

	sessions := configured
	if len(args) > 0 {
		for _, name := range args {
			if !slices.Contains(configured, name) {
				return errUtils.Build(fmt.Errorf("%w: %q", errUtils.ErrUnknownSession, name)).
					WithHintf("Sessions in %s: %s", settings.AWSConfig, strings.Join(configured, ", ")).
					Err()
			}
		}
		sessions = args
	}

	ctx := cmd.Context()
	var failures []error
	for _, session := range sessions {
		if err := sso.Login(ctx, session); err != nil {
			log.Error("Login failed", "session", session, "error", err)
			failures = append(failures, err)
			continue
		}
		fmt.Printf("Login successful for session %s\n", session)
	}
	return errors.Join(failures...)
}

func init() {
	awsCmd.AddCommand(awsLoginCmd)
}
