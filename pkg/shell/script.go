package shell

import (
	"errors"
	"fmt"
	"strings"

	errUtils "github.com/kolja-aws/kolja/errors"
)

// ErrInvalidScript indicates a generated script body fails its dialect check.
var ErrInvalidScript = errors.New("invalid shell script")

// posixScript is installed for bash and zsh. The picker binary writes the
// selected profile name to stdout and all interaction to stderr, so the
// substitution stays clean for export.
const posixScript = `# Switch AWS profiles. Usage: sp [profile]
sp() {
    local profile
    profile="$(kolja switch "$@")" || return
    if [ -n "$profile" ]; then
        export AWS_PROFILE="$profile"
    fi
}`

const fishScript = `# Switch AWS profiles. Usage: sp [profile]
function sp
    set -l profile (kolja switch $argv)
    or return
    if test -n "$profile"
        set -gx AWS_PROFILE $profile
    end
end`

// Script returns the profile switcher function body for kind. The body goes
// between BlockStart and BlockEnd and must stay self-contained: users source
// it straight from their startup file.
func Script(kind Kind) (string, error) {
	switch kind {
	case Bash, Zsh:
		return posixScript, nil
	case Fish:
		return fishScript, nil
	}
	return "", fmt.Errorf("%w: %s", errUtils.ErrUnsupportedShell, kind)
}

// ValidateScript checks that a script body defines the switcher function in
// the dialect of the target shell.
func ValidateScript(kind Kind, script string) error {
	var want []string
	switch kind {
	case Bash, Zsh:
		want = []string{"sp()", "export AWS_PROFILE"}
	case Fish:
		want = []string{"function sp", "set -gx AWS_PROFILE", "end"}
	default:
		return fmt.Errorf("%w: %s", errUtils.ErrUnsupportedShell, kind)
	}

	for _, token := range want {
		if !strings.Contains(script, token) {
			return fmt.Errorf("%w: %s script is missing %q", ErrInvalidScript, kind, token)
		}
	}
	return nil
}
