package sso

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	errUtils "github.com/kolja-aws/kolja/errors"
	log "github.com/kolja-aws/kolja/pkg/logger"
)

// newLoginCommand builds the AWS CLI login invocation. Swappable in tests.
var newLoginCommand = func(ctx context.Context, session string) *exec.Cmd {
	return exec.CommandContext(ctx, "aws", "sso", "login", "--sso-session", session)
}

// Login runs the AWS CLI's device-authorization flow for the named session.
// The CLI owns the browser handoff and writes the token cache; stdio is
// inherited so the verification prompt reaches the user directly.
func Login(ctx context.Context, session string) error {
	log.Debug("Starting SSO login", "session", session)

	cmd := newLoginCommand(ctx, session)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		base := fmt.Errorf("%w: session %s: %w", errUtils.ErrSSOLogin, session, err)
		builder := errUtils.Build(base).WithContext("session", session)
		if errors.Is(err, exec.ErrNotFound) {
			builder = builder.WithHint("Install the AWS CLI v2 and make sure `aws` is on your PATH")
		}
		if os.Getenv("AWS_PROFILE") != "" {
			builder = builder.WithHint("Unset AWS_PROFILE and retry, a stale profile can interfere with SSO login")
		}
		return builder.Err()
	}

	log.Debug("SSO login succeeded", "session", session)
	return nil
}
