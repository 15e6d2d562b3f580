// internal/app/features/errors/errors.go
package errors

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/dalemusser/placementhub/internal/app/system/apperr"
	"github.com/dalemusser/placementhub/internal/app/system/prompt"
	"go.uber.org/zap"
)

// titles maps each failure kind to the heading shown before its message.
var titles = map[error]string{
	apperr.ErrValidation:       "Invalid input",
	apperr.ErrInvalidState:     "Not allowed right now",
	apperr.ErrNotFound:         "Not found",
	apperr.ErrUnauthorized:     "Access denied",
	apperr.ErrNoRequestPending: "No withdrawal request",
}

// Message returns the user-facing text for err. Unexpected errors get a
// generic message; their detail only goes to the log.
func Message(err error) string {
	kind := apperr.KindOf(err)
	if kind == nil {
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			return "The operation timed out. Please try again."
		}
		return "Something went wrong. Please try again."
	}
	return fmt.Sprintf("%s: %s", titles[kind], err.Error())
}

// ErrorLogger reports failures to the console user and logs them.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(log *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: log}
}

// Report prints err to the user and logs it. Known failure kinds are
// expected outcomes and log at debug; anything else logs at error.
func (e *ErrorLogger) Report(p *prompt.Prompter, op string, err error) {
	p.Printf("  %s\n", Message(err))
	if kind := apperr.KindOf(err); kind != nil {
		e.log.Debug("operation refused",
			zap.String("op", op),
			zap.String("kind", kind.Error()),
			zap.Error(err),
		)
		return
	}
	e.log.Error(op+" failed", zap.Error(err))
}
