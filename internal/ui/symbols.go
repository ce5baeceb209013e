package ui

// Status symbols, styled by the caller.
func symSuccess() string  { return "✓" }
func symError() string    { return "✗" }
func symWarning() string  { return "!" }
func symProgress() string { return "○" }
