package installer

import (
	"github.com/kolja-aws/kolja/pkg/shell"
)

// ShellInstaller maintains the profile switcher block in a shell startup
// file. Content outside the managed block is never touched.
type ShellInstaller struct {
	path      string
	installer *Installer
}

// NewShellInstaller creates an installer for the startup file at path.
func NewShellInstaller(path string, opts ...Option) *ShellInstaller {
	base := []Option{
		WithFileMode(0o644),
		WithDirMode(0o755),
	}
	return &ShellInstaller{
		path:      path,
		installer: New(append(base, opts...)...),
	}
}

// InstallBlock writes script into the managed block, creating the startup
// file if needed. Reinstalling an identical script is a no-op.
func (s *ShellInstaller) InstallBlock(script string) (*Result, error) {
	return s.installer.Apply(s.path, func(current []byte) ([]byte, bool, error) {
		updated, changed := shell.UpsertBlock(string(current), script)
		if !changed {
			return nil, false, nil
		}
		return []byte(updated), true, nil
	})
}

// RemoveBlock deletes the managed block. Removing from a file without one,
// or from a missing file, is a no-op.
func (s *ShellInstaller) RemoveBlock() (*Result, error) {
	return s.installer.Apply(s.path, func(current []byte) ([]byte, bool, error) {
		updated, changed := shell.RemoveBlock(string(current))
		if !changed {
			return nil, false, nil
		}
		return []byte(updated), true, nil
	})
}
