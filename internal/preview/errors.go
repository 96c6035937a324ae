package preview

import (
	"context"
	"errors"
	"os/exec"
)

type Reason string

const (
	ReasonToolMissing   Reason = "tool_missing"
	ReasonTimeout       Reason = "timeout"
	ReasonRenderFailed  Reason = "render_failed"
	ReasonFetchFailed   Reason = "fetch_failed"
	ReasonInvalidOutput Reason = "invalid_output"
)

// RenderError is why a preview could not be produced. It is logged, not returned.
type RenderError struct {
	Reason Reason
	Err    error
}

func (e *RenderError) Error() string {
	if e.Err == nil {
		return "preview: " + string(e.Reason)
	}
	return "preview: " + string(e.Reason) + ": " + e.Err.Error()
}

func (e *RenderError) Unwrap() error { return e.Err }

func Classify(err error) Reason {
	var re *RenderError
	switch {
	case errors.As(err, &re):
		return re.Reason
	case errors.Is(err, exec.ErrNotFound):
		return ReasonToolMissing
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	default:
		return ReasonRenderFailed
	}
}
