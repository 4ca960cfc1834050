package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/kolja-aws/kolja/errors"
	"github.com/kolja-aws/kolja/pkg/filesystem"
)

func TestConfigCandidates(t *testing.T) {
	home := "/home/user"

	tests := []struct {
		kind     Kind
		expected []string
	}{
		{Bash, []string{"/home/user/.bashrc", "/home/user/.bash_profile"}},
		{Zsh, []string{"/home/user/.zshrc"}},
		{Fish, []string{"/home/user/.config/fish/config.fish"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			candidates, err := ConfigCandidates(tt.kind, home)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, candidates)
		})
	}
}

func TestConfigCandidatesUnsupported(t *testing.T) {
	_, err := ConfigCandidates(Unsupported, "/home/user")
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrUnsupportedShell)
}

func TestConfigFilePrefersExisting(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, ".bash_profile"), []byte("# profile\n"), 0o644))

	path, err := ConfigFile(filesystem.NewOSFileSystem(), Bash, home)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".bash_profile"), path)
}

func TestConfigFileExistingBeatsLaterCandidates(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, ".bashrc"), []byte("# rc\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".bash_profile"), []byte("# profile\n"), 0o644))

	path, err := ConfigFile(filesystem.NewOSFileSystem(), Bash, home)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".bashrc"), path)
}

func TestConfigFileDefaultsToFirstCandidate(t *testing.T) {
	home := t.TempDir()

	path, err := ConfigFile(filesystem.NewOSFileSystem(), Fish, home)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "fish", "config.fish"), path)
}
