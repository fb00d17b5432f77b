package notify

import (
	"context"

	"github.com/sterling-assoc/supportbot/internal/model/transaction"
)

// Dispatcher relays an assembled action request to the support team. A nil
// error means the notification was handed off; the bot treats a failure as a
// degraded success, never as a user-facing error.
type Dispatcher interface {
	SendRefundRequest(ctx context.Context, req transaction.ActionRequest) error
	SendCancellationRequest(ctx context.Context, req transaction.ActionRequest) error
	SendPaymentUpdateRequest(ctx context.Context, req transaction.ActionRequest) error
}
