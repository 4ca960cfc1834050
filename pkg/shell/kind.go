// Package shell detects the user's shell and maintains the profile switcher
// block in its startup file.
package shell

import (
	"path/filepath"
	"strings"
)

// Kind identifies a supported shell.
type Kind string

const (
	Bash Kind = "bash"
	Zsh  Kind = "zsh"
	Fish Kind = "fish"

	// Unsupported marks any shell outside the supported set.
	Unsupported Kind = "unsupported"
)

// Supported lists the shells the profile switcher integrates with.
var Supported = []Kind{Bash, Zsh, Fish}

// KindFromName maps a shell binary name or path to a Kind. Login-shell dashes
// and Windows extensions are stripped, so "-zsh" and "bash.exe" both resolve.
func KindFromName(name string) Kind {
	name = strings.TrimSpace(name)
	if name == "" {
		return Unsupported
	}

	base := strings.TrimPrefix(filepath.Base(name), "-")
	base = strings.TrimSuffix(base, ".exe")

	switch Kind(base) {
	case Bash:
		return Bash
	case Zsh:
		return Zsh
	case Fish:
		return Fish
	}
	return Unsupported
}
