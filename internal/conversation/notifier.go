package conversation

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

// PrintFunc prints one line of already-styled text.
// Matches display.UI.PrintChat and display.UI.PrintUrgent.
type PrintFunc func(text string)

// CLINotifier routes notifications to normal and urgent printers.
type CLINotifier struct {
	log    *logger.Logger
	normal PrintFunc
	urgent PrintFunc
}

// NewCLINotifier creates a notifier. Nil printers fall back to stdout.
func NewCLINotifier(log *logger.Logger, normal, urgent PrintFunc) *CLINotifier {
	if normal == nil {
		normal = func(text string) { fmt.Println(text) }
	}
	if urgent == nil {
		urgent = normal
	}
	return &CLINotifier{log: log, normal: normal, urgent: urgent}
}

// Notify prints a normal notification.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.normal(message)
	return nil
}

// NotifyUrgent prints an urgent notification.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	n.urgent(message)
	return nil
}
