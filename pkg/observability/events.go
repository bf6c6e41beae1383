package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Events counts business outcomes. It reads the global meter provider, so it
// is a no-op until Init has run.
type Events struct {
	contacts metric.Int64Counter
	logins   metric.Int64Counter
}

func NewEvents() *Events {
	meter := otel.Meter(instrumentationName)
	contacts, _ := meter.Int64Counter(
		"realty_contact_submissions",
		metric.WithDescription("Contact form submissions by notification outcome"),
	)
	logins, _ := meter.Int64Counter(
		"realty_admin_logins",
		metric.WithDescription("Admin login attempts by result"),
	)
	return &Events{contacts: contacts, logins: logins}
}

func (e *Events) ContactSubmitted(ctx context.Context, notified bool) {
	e.contacts.Add(ctx, 1, metric.WithAttributes(attribute.Bool("notified", notified)))
}

func (e *Events) LoginAttempt(ctx context.Context, ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	e.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
