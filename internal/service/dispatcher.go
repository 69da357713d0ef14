package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nabrah/usage-alert-service/internal/domain/model"
)

// Dispatcher routes one classified inbound event through the delivery
// pipeline. Exactly one attempt per event, no retries, no persistence.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev model.Event) model.Disposition
}

// Sender performs the outbound email delivery. Implemented by the Resend
// client; failures are best-effort and never bubble past the dispatcher.
type Sender interface {
	Send(ctx context.Context, to string, msg model.Message) error
}

type EventDispatcher struct {
	resolver Resolver
	composer Composer
	sender   Sender
	logger   *slog.Logger
}

func NewEventDispatcher(resolver Resolver, composer Composer, sender Sender, logger *slog.Logger) *EventDispatcher {
	return &EventDispatcher{
		resolver: resolver,
		composer: composer,
		sender:   sender,
		logger:   logger,
	}
}

// Dispatch handles the three-state machine: threshold alerts and channel
// tests produce an email, everything else is acknowledged and dropped so
// the metering service never redelivers.
func (d *EventDispatcher) Dispatch(ctx context.Context, ev model.Event) model.Disposition {
	deliveryID := uuid.NewString()

	switch ev.Type {
	case model.EventBalanceThreshold:
		to := d.resolver.Resolve(ctx, ev)
		msg := d.composer.Compose(ev)

		if err := d.sender.Send(ctx, to, msg); err != nil {
			d.logger.Error("ALERT_EMAIL_FAILED",
				"delivery_id", deliveryID,
				"to", to,
				"subject_key", ev.Subject.Key,
				"err", err,
			)
			return model.DispositionSendFailed
		}

		d.logger.Info("ALERT_EMAIL_SENT",
			"delivery_id", deliveryID,
			"to", to,
			"feature", ev.Feature.Display(),
			"subject", msg.Subject,
		)
		return model.DispositionSent

	case model.EventNotificationTest:
		to := d.resolver.Resolve(ctx, ev)
		msg := d.composer.ComposeTest()

		if err := d.sender.Send(ctx, to, msg); err != nil {
			d.logger.Error("TEST_EMAIL_FAILED",
				"delivery_id", deliveryID,
				"to", to,
				"err", err,
			)
			return model.DispositionTestFailed
		}

		d.logger.Info("TEST_EMAIL_SENT", "delivery_id", deliveryID, "to", to)
		return model.DispositionTestSent

	default:
		d.logger.Debug("EVENT_IGNORED", "type", string(ev.Type), "event_id", ev.ID)
		return model.DispositionIgnored
	}
}
