package cmdutil

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tuanvumaihuynh/cloudshop-etl/pkg/zerror"
)

// Exit codes by error kind, so a scheduler can tell failure causes apart.
const (
	ExitOK         = 0
	ExitUnknown    = 1
	ExitConnection = 2
	ExitTransform  = 3
	ExitPublish    = 4
	ExitValidation = 5
)

// InterruptContext returns a context cancelled on SIGINT or SIGTERM.
func InterruptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// ExitCode maps err to the process exit code for its kind.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	switch zerror.KindOf(err) {
	case zerror.KindConnection:
		return ExitConnection
	case zerror.KindTransform:
		return ExitTransform
	case zerror.KindPublish:
		return ExitPublish
	case zerror.KindValidationFailed:
		return ExitValidation
	default:
		return ExitUnknown
	}
}
