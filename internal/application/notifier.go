package application

import "context"

// NotificationPublisher enqueues notification jobs for the email worker.
// Satisfied by helpers.RabbitPublisher.
type NotificationPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}
