package awsconfig

import (
	"errors"
	"os"
	"strings"

	"gopkg.in/ini.v1"

	log "github.com/kolja-aws/kolja/pkg/logger"
	"github.com/kolja-aws/kolja/pkg/schema"
)

// ErrLoadConfigFile indicates the AWS config file could not be read for a
// listing operation.
var ErrLoadConfigFile = errors.New("failed to load AWS config file")

// File permissions for the AWS config file and its directory.
const (
	PermissionRWX = 0o700
	PermissionRW  = 0o600
)

// Profile is one profile section read from the AWS config file. The read
// path is listing-only; writes go through Parse/Reconcile/Render so
// untouched sections keep their bytes.
type Profile struct {
	Name       string
	SSOSession string
	AccountID  string
	RoleName   string
	Region     string
	Output     string
}

// LoadINIFile loads an INI file with options that preserve section comments.
func LoadINIFile(path string) (*ini.File, error) {
	return ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: false,
	}, path)
}

// LoadProfiles reads all profile sections from the config file. A missing
// file yields an empty list, matching a fresh machine where nothing has been
// generated yet.
func LoadProfiles(path string) ([]Profile, error) {
	cfg, err := LoadINIFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("AWS config file does not exist yet", "path", path)
			return nil, nil
		}
		return nil, errors.Join(ErrLoadConfigFile, err)
	}

	var profiles []Profile
	for _, section := range cfg.Sections() {
		name, ok := strings.CutPrefix(section.Name(), ProfileSectionPrefix)
		if !ok {
			continue
		}

		profile := Profile{
			Name:       name,
			SSOSession: section.Key(KeySSOSession).String(),
			AccountID:  section.Key(KeySSOAccountID).String(),
			RoleName:   section.Key(KeySSORoleName).String(),
			Region:     section.Key(KeyRegion).String(),
			Output:     section.Key(KeyOutput).String(),
		}

		// Profiles generated by this tool encode account and role in the
		// name. Fall back to that when the explicit keys are absent.
		if profile.AccountID == "" || profile.RoleName == "" {
			if account, role, ok := splitProfileName(name); ok {
				if profile.AccountID == "" {
					profile.AccountID = account
				}
				if profile.RoleName == "" {
					profile.RoleName = role
				}
			}
		}

		profiles = append(profiles, profile)
	}

	return profiles, nil
}

// SessionEntry is one sso-session section read from the AWS config file.
type SessionEntry struct {
	Name   string
	Config schema.SSOSessionConfig
}

// LoadSessions reads all sso-session sections with their connection details,
// in file order. A missing file yields an empty list.
func LoadSessions(path string) ([]SessionEntry, error) {
	cfg, err := LoadINIFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Join(ErrLoadConfigFile, err)
	}

	var sessions []SessionEntry
	for _, section := range cfg.Sections() {
		name, ok := strings.CutPrefix(section.Name(), SSOSessionSectionPrefix)
		if !ok {
			continue
		}
		sessions = append(sessions, SessionEntry{
			Name: name,
			Config: schema.SSOSessionConfig{
				StartURL:           section.Key(KeySSOStartURL).String(),
				Region:             section.Key(KeySSORegion).String(),
				RegistrationScopes: section.Key(KeyRegistrationScopes).String(),
			},
		})
	}
	return sessions, nil
}

// LoadSessionNames reads the names of all sso-session sections, in file
// order.
func LoadSessionNames(path string) ([]string, error) {
	cfg, err := LoadINIFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Join(ErrLoadConfigFile, err)
	}

	var names []string
	for _, sectionName := range cfg.SectionStrings() {
		if name, ok := strings.CutPrefix(sectionName, SSOSessionSectionPrefix); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// splitProfileName splits "<account>-<role>" at the first dash following a
// run of digits. Role names may contain dashes; account IDs never do.
func splitProfileName(name string) (account, role string, ok bool) {
	idx := strings.Index(name, "-")
	if idx <= 0 || idx == len(name)-1 {
		return "", "", false
	}
	account = name[:idx]
	for _, r := range account {
		if r < '0' || r > '9' {
			return "", "", false
		}
	}
	return account, name[idx+1:], true
}
