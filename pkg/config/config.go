// Package config loads kolja settings from kolja.yaml and the environment.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	errUtils "github.com/kolja-aws/kolja/errors"
	log "github.com/kolja-aws/kolja/pkg/logger"
	"github.com/kolja-aws/kolja/pkg/schema"
)

// Defaults applied when kolja.yaml or the environment do not say otherwise.
const (
	DefaultAWSConfigPath = "~/.aws/config"
	DefaultBackupKeep    = 5
	DefaultLockTimeout   = 3 * time.Second
)

// LoadSettings reads settings in the following precedence: KOLJA_* environment
// variables, then kolja.yaml from the config directory, then built-in
// defaults. The AWS config path is returned with ~ expanded.
func LoadSettings() (*schema.Settings, error) {
	v := viper.New()
	v.SetConfigName("kolja")
	v.SetConfigType("yaml")

	configDir, err := settingsDir()
	if err != nil {
		return nil, errors.Join(errUtils.ErrLoadSettings, err)
	}
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("KOLJA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("aws_config", DefaultAWSConfigPath)
	v.SetDefault("backup_keep", DefaultBackupKeep)
	v.SetDefault("lock_timeout", DefaultLockTimeout)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Join(errUtils.ErrLoadSettings, err)
		}
		// No settings file is fine. Defaults and environment still apply.
		log.Debug("No kolja.yaml found, using defaults", "dir", configDir)
	}

	var settings schema.Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, errors.Join(errUtils.ErrLoadSettings, err)
	}

	for name, session := range settings.SSOSessions {
		if session.RegistrationScopes == "" {
			session.RegistrationScopes = schema.DefaultRegistrationScopes
			settings.SSOSessions[name] = session
		}
		if err := session.Validate(name); err != nil {
			return nil, fmt.Errorf("%w: %s", errUtils.ErrInvalidSessionConfig, err)
		}
	}

	expanded, err := homedir.Expand(settings.AWSConfig)
	if err != nil {
		return nil, errors.Join(errUtils.ErrLoadSettings, err)
	}
	settings.AWSConfig = expanded

	log.Debug("Loaded settings",
		"aws_config", settings.AWSConfig,
		"sessions", len(settings.SSOSessions),
		"backup_keep", settings.BackupKeep)

	return &settings, nil
}

// settingsDir returns the directory searched for kolja.yaml.
// KOLJA_CONFIG_DIR overrides the XDG default.
func settingsDir() (string, error) {
	v := viper.New()
	if err := v.BindEnv("KOLJA_CONFIG_DIR"); err != nil {
		return "", fmt.Errorf("error binding KOLJA_CONFIG_DIR: %w", err)
	}

	if custom := v.GetString("KOLJA_CONFIG_DIR"); custom != "" {
		return custom, nil
	}
	return filepath.Join(xdg.ConfigHome, "kolja"), nil
}
