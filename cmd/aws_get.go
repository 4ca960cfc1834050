package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	errUtils "github.com/kolja-aws/kolja/errors"
	"github.com/kolja-aws/kolja/pkg/awsconfig"
	"github.com/kolja-aws/kolja/pkg/config"
	"github.com/kolja-aws/kolja/pkg/schema"
)

// Output formats supported by `kolja aws get`.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// awsGetCmd lists the sso-session sections present in the AWS config.
var awsGetCmd = &cobra.Command{
	Use:     "get",
	Short:   "List sso-session sections present in the AWS config",
	Long:    `Lists the SSO sessions currently written into the AWS config file.`,
	Example: "kolja aws get\nkolja aws get --format json",
	Args:    cobra.NoArgs,
	RunE:    executeAwsGetCommand,
}

func executeAwsGetCommand(cmd *cobra.Command, _ []string) error {
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
			WithHint("Run `kolja aws set <session>` to write one from kolja.yaml").
			Err()
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	return printSessions(sessions, format)
}

func printSessions(sessions []awsconfig.SessionEntry, format string) error {
	switch format {
	case formatText:
		for _, session := range sessions {
			fmt.Println(session.Name)
		}
	case formatJSON:
		blob, err := json.MarshalIndent(sessionsDocument(sessions), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(blob))
	case formatYAML:
		blob, err := yaml.Marshal(sessionsDocument(sessions))
		if err != nil {
			return err
		}
		fmt.Print(string(blob))
	default:
		return fmt.Errorf("%w: %q, supported formats are %s, %s, %s",
			errUtils.ErrInvalidFormat, format, formatText, formatJSON, formatYAML)
	}
	return nil
}

// sessionsDocument shapes the sessions for structured output, keyed by
// session name.
func sessionsDocument(sessions []awsconfig.SessionEntry) map[string]schema.SSOSessionConfig {
	out := make(map[string]schema.SSOSessionConfig, len(sessions))
	for _, session := range sessions {
		out[session.Name] = session.Config
	}
	return out
}

func init() {
	awsGetCmd.Flags().StringP("format", "f", formatText, "Output format. Supported formats are text, json, yaml")
	awsCmd.AddCommand(awsGetCmd)
}
