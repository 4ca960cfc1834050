package shell

import (
	"os"
	"os/exec"

	"github.com/shirou/gopsutil/v4/process"

	errUtils "github.com/kolja-aws/kolja/errors"
	log "github.com/kolja-aws/kolja/pkg/logger"
)

// probeOrder is the PATH probe fallback order when neither the environment
// nor the parent process identifies the shell.
var probeOrder = []Kind{Zsh, Bash, Fish}

// Detector resolves which shell invoked the CLI.
type Detector struct {
	getenv     func(string) string
	parentName func() (string, error)
	lookPath   func(string) (string, error)
}

// DetectorOption adjusts a Detector.
type DetectorOption func(*Detector)

// WithGetenv injects the environment lookup, for tests.
func WithGetenv(getenv func(string) string) DetectorOption {
	return func(d *Detector) {
		d.getenv = getenv
	}
}

// WithParentName injects the parent process name lookup, for tests.
func WithParentName(parentName func() (string, error)) DetectorOption {
	return func(d *Detector) {
		d.parentName = parentName
	}
}

// WithLookPath injects the PATH probe, for tests.
func WithLookPath(lookPath func(string) (string, error)) DetectorOption {
	return func(d *Detector) {
		d.lookPath = lookPath
	}
}

// NewDetector creates a shell detector.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{
		getenv:     os.Getenv,
		parentName: parentProcessName,
		lookPath:   exec.LookPath,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect identifies the invoking shell. It checks the SHELL environment
// variable first, then the parent process name, then probes PATH for a known
// shell binary. All three failing yields ErrUnsupportedShell.
func (d *Detector) Detect() (Kind, error) {
	if kind := KindFromName(d.getenv("SHELL")); kind != Unsupported {
		log.Debug("Detected shell from environment", "shell", kind)
		return kind, nil
	}

	name, err := d.parentName()
	if err != nil {
		log.Trace("Cannot inspect parent process", "error", err)
	} else if kind := KindFromName(name); kind != Unsupported {
		log.Debug("Detected shell from parent process", "shell", kind, "process", name)
		return kind, nil
	}

	for _, kind := range probeOrder {
		if _, err := d.lookPath(string(kind)); err == nil {
			log.Debug("Detected shell from PATH probe", "shell", kind)
			return kind, nil
		}
	}

	return Unsupported, errUtils.Build(errUtils.ErrUnsupportedShell).
		WithHint("Supported shells: bash, zsh, fish").
		WithHint("Set the SHELL environment variable to your shell's path").
		Err()
}

// parentProcessName returns the executable name of the process that spawned
// this one, typically the interactive shell.
func parentProcessName() (string, error) {
	proc, err := process.NewProcess(int32(os.Getppid()))
	if err != nil {
		return "", err
	}
	return proc.Name()
}
