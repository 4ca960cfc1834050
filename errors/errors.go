package errors

import "errors"

// Sentinel errors for the config reconciliation engine. Callers match them
// with errors.Is(); wrapping adds path and operation detail.
var (
	// ErrMalformedDocument indicates the AWS config file could not be parsed.
	ErrMalformedDocument = errors.New("malformed config document")

	// ErrBackup indicates a backup could not be created, read, or restored.
	// Installers treat this as fatal: writing without a backup is not allowed.
	ErrBackup = errors.New("backup failed")

	// ErrWrite indicates an atomic write failed. The target file is unmodified.
	ErrWrite = errors.New("write failed")

	// ErrLockTimeout indicates another process holds the lock for the target
	// file. Retryable after a delay.
	ErrLockTimeout = errors.New("file is locked by another process")

	// ErrUnsupportedShell indicates the detected shell is not bash, zsh, or fish.
	ErrUnsupportedShell = errors.New("unsupported shell")
)

// Sentinel errors for settings and session configuration.
var (
	ErrLoadSettings         = errors.New("failed to load settings")
	ErrInvalidSessionConfig = errors.New("invalid SSO session configuration")
	ErrUnknownSession       = errors.New("unknown SSO session")
	ErrNoSessions           = errors.New("no SSO sessions configured")
)

// Sentinel errors for the AWS SSO boundary.
var (
	ErrNoAccessToken    = errors.New("no valid SSO access token")
	ErrListAccounts     = errors.New("failed to list SSO accounts")
	ErrListAccountRoles = errors.New("failed to list SSO account roles")
	ErrSSOLogin         = errors.New("SSO login failed")
)

// Sentinel errors for profile switching.
var (
	ErrNoProfiles      = errors.New("no AWS profiles found")
	ErrProfileNotFound = errors.New("profile not found")
)

// ErrInvalidFormat indicates an unsupported output format flag value.
var ErrInvalidFormat = errors.New("invalid output format")
