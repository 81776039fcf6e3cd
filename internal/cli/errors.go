package cli

import "errors"

var (
	// ErrAborted is returned when the user aborts an operation.
	ErrAborted = errors.New("operation aborted by user")

	// ErrFlatpakMissing is returned when flatpak is absent and could not be installed.
	ErrFlatpakMissing = errors.New("flatpak is not installed")
)
