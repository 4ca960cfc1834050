package installer

import (
	"github.com/kolja-aws/kolja/pkg/awsconfig"
)

// ConfigInstaller reconciles generated sso-session and profile sections into
// an AWS shared config file, preserving everything it does not manage.
type ConfigInstaller struct {
	path      string
	installer *Installer
}

// InstallResult extends Result with the section-level change set.
type InstallResult struct {
	Result
	Changes *awsconfig.ChangeSet
}

// NewConfigInstaller creates an installer for the AWS config file at path.
func NewConfigInstaller(path string, opts ...Option) *ConfigInstaller {
	base := []Option{
		WithFileMode(awsconfig.PermissionRW),
		WithDirMode(awsconfig.PermissionRWX),
	}
	return &ConfigInstaller{
		path:      path,
		installer: New(append(base, opts...)...),
	}
}

// Install reconciles the desired sections into the config file. When the
// reconciled document is semantically identical to the current one, no
// backup is taken and the file is not rewritten.
func (c *ConfigInstaller) Install(desired []awsconfig.DesiredSection, opts ...awsconfig.ReconcileOption) (*InstallResult, error) {
	var changes *awsconfig.ChangeSet

	result, err := c.installer.Apply(c.path, func(current []byte) ([]byte, bool, error) {
		doc, err := awsconfig.Parse(string(current))
		if err != nil {
			return nil, false, err
		}

		next, changeSet := awsconfig.Reconcile(doc, desired, opts...)
		changes = changeSet
		if !changeSet.Changed() {
			return nil, false, nil
		}

		return []byte(next.Render()), true, nil
	})
	if err != nil {
		return nil, err
	}

	return &InstallResult{Result: *result, Changes: changes}, nil
}
