// Package schema defines the typed configuration for kolja.
package schema

import (
	"fmt"
	"sort"
	"time"
)

// DefaultRegistrationScopes is applied when a session omits
// sso_registration_scopes.
const DefaultRegistrationScopes = "sso:account:access"

// SSOSessionConfig describes one sso-session block kolja manages in the AWS
// config file. Field names mirror the keys the AWS CLI expects.
type SSOSessionConfig struct {
	StartURL           string `mapstructure:"sso_start_url" yaml:"sso_start_url" json:"sso_start_url"`
	Region             string `mapstructure:"sso_region" yaml:"sso_region" json:"sso_region"`
	RegistrationScopes string `mapstructure:"sso_registration_scopes" yaml:"sso_registration_scopes,omitempty" json:"sso_registration_scopes,omitempty"`
}

// Validate checks that the session carries the fields the AWS CLI requires.
// The registration scopes default is applied during settings load, not here.
func (s SSOSessionConfig) Validate(name string) error {
	if name == "" {
		return fmt.Errorf("session name must not be empty")
	}
	if s.StartURL == "" {
		return fmt.Errorf("session %q: sso_start_url is required", name)
	}
	if s.Region == "" {
		return fmt.Errorf("session %q: sso_region is required", name)
	}
	return nil
}

// Settings is the kolja configuration loaded from kolja.yaml and KOLJA_*
// environment variables.
type Settings struct {
	// AWSConfig is the path of the AWS CLI config file kolja reconciles.
	AWSConfig string `mapstructure:"aws_config" yaml:"aws_config" json:"aws_config"`

	// BackupKeep is how many backups to retain per managed file.
	BackupKeep int `mapstructure:"backup_keep" yaml:"backup_keep" json:"backup_keep"`

	// LockTimeout bounds how long an invocation waits for the advisory lock
	// held by a concurrent invocation.
	LockTimeout time.Duration `mapstructure:"lock_timeout" yaml:"lock_timeout" json:"lock_timeout"`

	// SSOSessions maps session name to its sso-session block definition.
	SSOSessions map[string]SSOSessionConfig `mapstructure:"sso_sessions" yaml:"sso_sessions" json:"sso_sessions"`
}

// SessionNames returns the configured session names in sorted order so
// output and reconciliation are deterministic.
func (s *Settings) SessionNames() []string {
	names := make([]string, 0, len(s.SSOSessions))
	for name := range s.SSOSessions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
