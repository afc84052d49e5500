package port

import "context"

// Notifier delivers user-facing import progress messages.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}
