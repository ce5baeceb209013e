package hook

import "fmt"

// FailedError reports the first completion callback that returned an
// error or panicked. It aborts the creation run.
type FailedError struct {
	Hook  string
	Stage Stage
	Err   error
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("%s hook %q: %v", e.Stage, e.Hook, e.Err)
}

func (e *FailedError) Unwrap() error {
	return e.Err
}
