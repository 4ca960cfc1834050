package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	errUtils "github.com/kolja-aws/kolja/errors"
	"github.com/kolja-aws/kolja/pkg/awsconfig"
	"github.com/kolja-aws/kolja/pkg/config"
)

// switchCmd picks an AWS profile and prints its name to stdout. Everything
// interactive goes to stderr so the sp() shell function can capture the name
// and export AWS_PROFILE.
var switchCmd = &cobra.Command{
	Use:   "switch [profile]",
	Short: "Pick an AWS profile and print its name",
	Long: `Selects one of the profiles in the AWS config and prints its name to stdout.
Without an argument an interactive picker opens. Mostly called through the
sp() shell function, but usable directly:

  export AWS_PROFILE="$(kolja switch)"`,
	Example: "kolja switch\nkolja switch 111111111111-AdminRole",
	Args:    cobra.MaximumNArgs(1),
	RunE:    executeSwitchCommand,
}

func executeSwitchCommand(_ *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	profiles, err := awsconfig.LoadProfiles(settings.AWSConfig)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		return errUtils.Build(errUtils.ErrNoProfiles).
			WithContext("file", settings.AWSConfig).
			WithHint("Run `kolja aws profiles` to generate profiles first").
			Err()
	}

	var selected awsconfig.Profile
	if len(args) == 1 {
		profile, ok := findProfile(profiles, args[0])
		if !ok {
			return errUtils.Build(fmt.Errorf("%w: %q", errUtils.ErrProfileNotFound, args[0])).
				WithHint("Run `kolja switch` without arguments to pick interactively").
				Err()
		}
		selected = profile
	} else {
		profile, err := pickProfile(profiles)
		if err != nil {
			return err
		}
		selected = profile
	}

	// The only stdout write in this command. sp() captures it.
	fmt.Println(selected.Name)

	rows := [][2]string{{"Profile:", selected.Name}}
	if selected.AccountID != "" {
		rows = append(rows, [2]string{"Account:", selected.AccountID})
	}
	if selected.RoleName != "" {
		rows = append(rows, [2]string{"Role:", selected.RoleName})
	}
	if selected.Region != "" {
		rows = append(rows, [2]string{"Region:", selected.Region})
	}
	successBox("Profile selected", rows)
	return nil
}

func findProfile(profiles []awsconfig.Profile, name string) (awsconfig.Profile, bool) {
	for _, profile := range profiles {
		if profile.Name == name {
			return profile, true
		}
	}
	return awsconfig.Profile{}, false
}

// profileOptions builds the picker options, tagging the profile currently
// exported as AWS_PROFILE. The annotation lives in the label only; the
// option value stays the bare name that ends up on stdout.
func profileOptions(profiles []awsconfig.Profile, active string) []huh.Option[string] {
	options := make([]huh.Option[string], len(profiles))
	for i, profile := range profiles {
		label := profile.Name
		if profile.Name == active {
			label += " (current)"
		}
		options[i] = huh.NewOption(label, profile.Name)
	}
	return options
}

func pickProfile(profiles []awsconfig.Profile) (awsconfig.Profile, error) {
	var selectedName string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select AWS profile").
				Options(profileOptions(profiles, os.Getenv("AWS_PROFILE"))...).
				Value(&selectedName),
		),
	).WithOutput(os.Stderr)

	if err := form.Run(); err != nil {
		return awsconfig.Profile{}, fmt.Errorf("profile selection canceled: %w", err)
	}

	profile, _ := findProfile(profiles, selectedName)
	return profile, nil
}

func init() {
	RootCmd.AddCommand(switchCmd)
}
