package prompts

import "fmt"

// MissingFieldError reports a template placeholder that could not be
// resolved to a non-empty prospect field. Composition fails with this
// error instead of emitting a partially-substituted prompt.
type MissingFieldError struct {
	Placeholder string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("prompt placeholder {{.%s}} has no value", e.Placeholder)
}

// UnknownPlaceholderError reports a placeholder that is not part of the
// known placeholder set. Custom templates are verified against the set
// before use so typos fail loudly instead of passing through.
type UnknownPlaceholderError struct {
	Placeholder string
}

func (e *UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("unknown prompt placeholder {{.%s}}", e.Placeholder)
}
