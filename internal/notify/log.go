package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sterling-assoc/supportbot/internal/model/transaction"
)

// LogDispatcher is the simulation mode used when EmailJS credentials are
// absent: it logs the outbound request and reports success so the
// conversation flow stays exercisable in development.
type LogDispatcher struct {
	log zerolog.Logger
}

// NewLogDispatcher creates the log-only dispatcher.
func NewLogDispatcher(log zerolog.Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

// SendRefundRequest logs a refund request instead of sending it.
func (d *LogDispatcher) SendRefundRequest(_ context.Context, req transaction.ActionRequest) error {
	return d.record(req)
}

// SendCancellationRequest logs a cancellation request instead of sending it.
func (d *LogDispatcher) SendCancellationRequest(_ context.Context, req transaction.ActionRequest) error {
	return d.record(req)
}

// SendPaymentUpdateRequest logs a payment-update request instead of sending it.
func (d *LogDispatcher) SendPaymentUpdateRequest(_ context.Context, req transaction.ActionRequest) error {
	return d.record(req)
}

func (d *LogDispatcher) record(req transaction.ActionRequest) error {
	d.log.Info().
		Str("kind", req.Kind).
		Str("subject", Subject(req)).
		Str("transactionId", req.TransactionID).
		Str("requesterEmail", req.RequesterEmail).
		Msg("email simulation: support request recorded")
	return nil
}
