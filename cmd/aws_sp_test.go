package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolja-aws/kolja/pkg/backup"
	"github.com/kolja-aws/kolja/pkg/shell"
)

// spTestHome pins HOME and SHELL so the installer targets a temp .bashrc.
func spTestHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELL", "/bin/bash")
	homedir.Reset()
	t.Cleanup(homedir.Reset)
	return home
}

func TestAwsSpInstallsIntoBashrc(t *testing.T) {
	home := spTestHome(t)

	require.NoError(t, executeAwsSpCommand(awsSpCmd, nil))

	content, err := os.ReadFile(filepath.Join(home, ".bashrc"))
	require.NoError(t, err)
	assert.Contains(t, string(content), shell.BlockStart)
	assert.Contains(t, string(content), "sp() {")
	assert.Contains(t, string(content), shell.BlockEnd)
}

func TestAwsSpPreservesExistingContent(t *testing.T) {
	home := spTestHome(t)
	rcPath := filepath.Join(home, ".bashrc")
	existing := "# my prompt\nexport PS1='$ '\n"
	require.NoError(t, os.WriteFile(rcPath, []byte(existing), 0o644))

	require.NoError(t, executeAwsSpCommand(awsSpCmd, nil))

	content, err := os.ReadFile(rcPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), existing)
	assert.Contains(t, string(content), shell.BlockStart)

	// The original file was backed up before the rewrite.
	entries, err := os.ReadDir(home)
	require.NoError(t, err)
	var backups int
	for _, entry := range entries {
		if strings.Contains(entry.Name(), backup.Suffix) {
			backups++
		}
	}
	assert.Equal(t, 1, backups)
}

func TestAwsSpInstallTwiceIsNoop(t *testing.T) {
	home := spTestHome(t)

	require.NoError(t, executeAwsSpCommand(awsSpCmd, nil))
	first, err := os.ReadFile(filepath.Join(home, ".bashrc"))
	require.NoError(t, err)

	require.NoError(t, executeAwsSpCommand(awsSpCmd, nil))
	second, err := os.ReadFile(filepath.Join(home, ".bashrc"))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestAwsSpUninstallRemovesBlock(t *testing.T) {
	home := spTestHome(t)
	rcPath := filepath.Join(home, ".bashrc")
	existing := "# my prompt\n"
	require.NoError(t, os.WriteFile(rcPath, []byte(existing), 0o644))

	require.NoError(t, executeAwsSpCommand(awsSpCmd, nil))

	require.NoError(t, awsSpCmd.Flags().Set("uninstall", "true"))
	t.Cleanup(func() { _ = awsSpCmd.Flags().Set("uninstall", "false") })
	require.NoError(t, executeAwsSpCommand(awsSpCmd, nil))

	content, err := os.ReadFile(rcPath)
	require.NoError(t, err)
	assert.Equal(t, existing, string(content))
}

func TestAwsSpStatus(t *testing.T) {
	spTestHome(t)

	require.NoError(t, awsSpCmd.Flags().Set("status", "true"))
	t.Cleanup(func() { _ = awsSpCmd.Flags().Set("status", "false") })

	output, err := captureStdout(t, func() error {
		return executeAwsSpCommand(awsSpCmd, nil)
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Shell:     bash")
	assert.Contains(t, output, "Installed: false")
}

func TestAwsSpStatusAfterInstall(t *testing.T) {
	spTestHome(t)

	require.NoError(t, executeAwsSpCommand(awsSpCmd, nil))

	require.NoError(t, awsSpCmd.Flags().Set("status", "true"))
	t.Cleanup(func() { _ = awsSpCmd.Flags().Set("status", "false") })

	output, err := captureStdout(t, func() error {
		return executeAwsSpCommand(awsSpCmd, nil)
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Installed: true")
	assert.Contains(t, output, "Script:    current")
}

func TestScriptStatus(t *testing.T) {
	current, err := shell.Script(shell.Bash)
	require.NoError(t, err)

	assert.Equal(t, "current", scriptStatus(shell.Bash, current))
	assert.Contains(t, scriptStatus(shell.Bash, current+"\nalias k=kolja"), "outdated")
	assert.Contains(t, scriptStatus(shell.Bash, "# emptied by hand"), "broken")
}
