package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testKoljaYAML = `sso_sessions:
  kolja:
    sso_start_url: https://kolja.awsapps.com/start
    sso_region: eu-central-1
`

// captureStdout runs fn while collecting everything written to os.Stdout.
// Commands print results directly, so tests capture the stream itself.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	require.NoError(t, w.Close())
	os.Stdout = oldStdout

	var output bytes.Buffer
	_, err = io.Copy(&output, r)
	require.NoError(t, err)

	return output.String(), runErr
}

// testSettings points kolja at a temp settings dir and AWS config file and
// returns the AWS config path.
func testSettings(t *testing.T, koljaYAML string) string {
	t.Helper()

	tmp := t.TempDir()
	awsConfig := filepath.Join(tmp, "aws-config")
	t.Setenv("KOLJA_CONFIG_DIR", tmp)
	t.Setenv("KOLJA_AWS_CONFIG", awsConfig)

	if koljaYAML != "" {
		require.NoError(t, os.WriteFile(filepath.Join(tmp, "kolja.yaml"), []byte(koljaYAML), 0o644))
	}
	return awsConfig
}
