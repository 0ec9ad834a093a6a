package cli

// SilentError wraps an error to signal that the error message has already
// been printed to the user. main.go checks for this type to avoid
// duplicate output — adapted from the teacher's cmd/entire/cli/errors.go.
type SilentError struct {
	Err error
}

func (e *SilentError) Error() string { return e.Err.Error() }
func (e *SilentError) Unwrap() error { return e.Err }

// NewSilentError wraps err as a SilentError.
func NewSilentError(err error) *SilentError {
	return &SilentError{Err: err}
}

// ExitCodeError wraps an error with a specific process exit code.
type ExitCodeError struct {
	Err      error
	ExitCode int
}

func (e *ExitCodeError) Error() string { return e.Err.Error() }
func (e *ExitCodeError) Unwrap() error { return e.Err }

// NewExitCodeError wraps err as an ExitCodeError with the given code.
func NewExitCodeError(err error, code int) *ExitCodeError {
	return &ExitCodeError{Err: err, ExitCode: code}
}
