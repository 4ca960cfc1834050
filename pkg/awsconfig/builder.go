package awsconfig

import (
	"github.com/kolja-aws/kolja/pkg/schema"
)

// ProfileName returns the profile name for an account role pair, e.g.
// "111111111111-AdminRole".
func ProfileName(accountID, roleName string) string {
	return accountID + "-" + roleName
}

// SessionSection builds the desired sso-session section for a configured
// session.
func SessionSection(name string, cfg schema.SSOSessionConfig) DesiredSection {
	scopes := cfg.RegistrationScopes
	if scopes == "" {
		scopes = schema.DefaultRegistrationScopes
	}
	return DesiredSection{
		Header: SSOSessionSectionPrefix + name,
		Keys: []KeyValue{
			{Key: KeySSOStartURL, Value: cfg.StartURL},
			{Key: KeySSORegion, Value: cfg.Region},
			{Key: KeyRegistrationScopes, Value: scopes},
		},
	}
}

// RoleProfileSection builds the desired profile section for one role in one
// account, bound to its sso-session.
func RoleProfileSection(session, accountID, roleName, region string) DesiredSection {
	return DesiredSection{
		Header: ProfileSectionPrefix + ProfileName(accountID, roleName),
		Keys: []KeyValue{
			{Key: KeySSOSession, Value: session},
			{Key: KeySSOAccountID, Value: accountID},
			{Key: KeySSORoleName, Value: roleName},
			{Key: KeyRegion, Value: region},
			{Key: KeyOutput, Value: "text"},
		},
	}
}
