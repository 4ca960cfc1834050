package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/kolja-aws/kolja/cmd"
	errUtils "github.com/kolja-aws/kolja/errors"
	log "github.com/kolja-aws/kolja/pkg/logger"
)

func main() {
	// Exit with the POSIX convention (128 + signal number) on interrupt.
	// Writes to the AWS config are atomic, so an early exit never leaves a
	// torn file behind.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		// Use errUtils.OsExit to allow test interception (Go 1.25+ panics on os.Exit in tests).
		if s, ok := sig.(syscall.Signal); ok {
			errUtils.OsExit(128 + int(s))
		}
		// Fallback to SIGINT exit code if signal type assertion fails.
		errUtils.OsExit(130)
	}()

	errUtils.OsExit(run())
}

// run executes the CLI and maps the outcome to an exit code.
func run() int {
	err := cmd.Execute()
	if err != nil {
		// Format and print the error using the centralized formatter.
		formatted := errUtils.Format(err, errUtils.DefaultFormatterConfig())
		os.Stderr.WriteString(formatted + "\n")

		exitCode := errUtils.GetExitCode(err)
		log.Debug("Exiting with exit code", "code", exitCode)
		return exitCode
	}

	return 0
}
