package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	errUtils "github.com/kolja-aws/kolja/errors"
	"github.com/kolja-aws/kolja/pkg/awsconfig"
	"github.com/kolja-aws/kolja/pkg/config"
	"github.com/kolja-aws/kolja/pkg/installer"
	log "github.com/kolja-aws/kolja/pkg/logger"
	"github.com/kolja-aws/kolja/pkg/sso"
)

// awsProfilesCmd generates a profile section for every account and role
// reachable through the configured SSO sessions.
var awsProfilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Generate profiles for every account and role you can assume",
	Long: `Enumerates the accounts and roles each SSO session grants access to and
writes a profile section per role into the AWS config. Profiles kolja wrote
earlier for roles you no longer hold are removed. Requires a prior
` + "`kolja aws login`" + `.`,
	Example: "kolja aws profiles",
	Args:    cobra.NoArgs,
	RunE:    executeAwsProfilesCommand,
}

func executeAwsProfilesCommand(cmd *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	sessions, err := awsconfig.LoadSessions(settings.AWSConfig)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return errUtils.Build(errUtils.ErrNoSessions).
			WithContext("file", settings.AWSConfig).
			WithHint("Run `kolja aws set <session>` first").
			Err()
	}

	tokens, err := sso.NewTokenCache()
	if err != nil {
		return err
	}
	configInstaller := newConfigInstaller(settings)

	ctx := cmd.Context()
	var failures []error
	var totalRoles int
	for _, session := range sessions {
		roles, err := generateSessionProfiles(ctx, configInstaller, tokens, session)
		if err != nil {
			log.Error("Profile generation failed", "session", session.Name, "error", err)
			failures = append(failures, err)
			continue
		}
		totalRoles += roles
	}
	if err := errors.Join(failures...); err != nil {
		return err
	}

	successBox("Profiles up to date!", [][2]string{
		{"Sessions:", fmt.Sprintf("%d", len(sessions))},
		{"Profiles:", fmt.Sprintf("%d", totalRoles)},
		{"Config:", settings.AWSConfig},
	})
	return nil
}

// generateSessionProfiles reconciles the profiles for one session and
// returns how many roles it found. Desired state is the full role set the
// session grants right now, so roles that disappeared since the last run are
// pruned in the same write.
func generateSessionProfiles(ctx context.Context, configInstaller *installer.ConfigInstaller, tokens *sso.TokenCache, session awsconfig.SessionEntry) (int, error) {
	region := session.Config.Region
	if region == "" {
		return 0, fmt.Errorf("%w: sso-session %s has no sso_region", errUtils.ErrInvalidSessionConfig, session.Name)
	}

	token, err := tokens.TokenForRegion(region)
	if err != nil {
		return 0, err
	}

	client, err := sso.NewClient(ctx, region)
	if err != nil {
		return 0, err
	}

	roles, err := sso.AccountRoles(ctx, client, token.AccessToken)
	if err != nil {
		return 0, err
	}

	desired := make([]awsconfig.DesiredSection, 0, len(roles))
	for _, role := range roles {
		desired = append(desired, awsconfig.RoleProfileSection(session.Name, role.AccountID, role.RoleName, region))
	}

	result, err := configInstaller.Install(desired, awsconfig.PruneSessionProfiles(session.Name))
	if err != nil {
		return 0, err
	}

	if !result.Changed {
		fmt.Printf("Session %s: %d profiles already up to date\n", session.Name, len(roles))
		return len(roles), nil
	}
	fmt.Printf("Session %s: %d roles\n", session.Name, len(roles))
	printChangeSummary(result)
	return len(roles), nil
}

func init() {
	awsCmd.AddCommand(awsProfilesCmd)
}
