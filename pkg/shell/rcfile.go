package shell

import (
	"fmt"
	"path/filepath"

	errUtils "github.com/kolja-aws/kolja/errors"
	"github.com/kolja-aws/kolja/pkg/filesystem"
)

// configCandidates maps each supported shell to its startup files relative to
// the home directory, most preferred first.
var configCandidates = map[Kind][]string{
	Bash: {".bashrc", ".bash_profile"},
	Zsh:  {".zshrc"},
	Fish: {filepath.Join(".config", "fish", "config.fish")},
}

// ConfigCandidates returns the absolute startup-file candidates for kind.
func ConfigCandidates(kind Kind, home string) ([]string, error) {
	rel, ok := configCandidates[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUtils.ErrUnsupportedShell, kind)
	}

	paths := make([]string, len(rel))
	for i, r := range rel {
		paths[i] = filepath.Join(home, r)
	}
	return paths, nil
}

// ConfigFile picks the startup file to manage: the first candidate that
// exists, or the first candidate overall when none exist yet. The latter is
// not an error, the installer creates the file.
func ConfigFile(fs filesystem.FileSystem, kind Kind, home string) (string, error) {
	candidates, err := ConfigCandidates(kind, home)
	if err != nil {
		return "", err
	}

	for _, path := range candidates {
		if _, err := fs.Stat(path); err == nil {
			return path, nil
		}
	}
	return candidates[0], nil
}
