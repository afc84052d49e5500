package noop

import (
	"context"

	"go.uber.org/zap"

	"fmgimport/internal/port"
)

type noopNotifier struct {
	logger *zap.Logger
}

// NewNoopNotifier creates a Notifier that only logs progress messages.
func NewNoopNotifier(logger *zap.Logger) port.Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &noopNotifier{logger: logger.Named("notify")}
}

func (n *noopNotifier) Notify(_ context.Context, message string) error {
	n.logger.Info(message)
	return nil
}
