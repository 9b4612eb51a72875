package toolkit

import (
	"fmt"

	"github.com/shamank/smartwallet-console/pkg/blockchain"
)

// ToolError is a domain failure raised by an action. Detail is a short,
// user-facing reason such as "insufficient balance".
type ToolError struct {
	Detail string
	Cause  error
}

// Failf builds a ToolError with a formatted reason.
func Failf(format string, a ...any) *ToolError {
	return &ToolError{Detail: fmt.Sprintf(format, a...)}
}

// Wrap builds a ToolError carrying cause.
func Wrap(cause error, format string, a ...any) *ToolError {
	return &ToolError{Detail: fmt.Sprintf(format, a...), Cause: cause}
}

func (e *ToolError) Error() string {
	if e.Cause != nil {
		return e.Detail + ": " + e.Cause.Error()
	}
	return e.Detail
}

// Reason returns the most specific user-facing reason: the detail, followed
// by the decoded revert reason of the cause when the chain supplied one.
func (e *ToolError) Reason() string {
	if e.Cause == nil {
		return e.Detail
	}
	if r := blockchain.RevertReason(e.Cause); r != "" {
		return e.Detail + ": " + r
	}
	return e.Error()
}

func (e *ToolError) Unwrap() error { return e.Cause }
