package action

import (
	"context"
	"fmt"
	"time"

	"github.com/sterling-assoc/supportbot/internal/model/chat"
	"github.com/sterling-assoc/supportbot/internal/model/transaction"
	"github.com/sterling-assoc/supportbot/internal/notify"
)

// Result reports the outcome of one relayed support request. Success false
// means the confirmation email could not be sent; the request itself still
// counts as submitted and Message says so.
type Result struct {
	Success bool
	Message string
}

// Processor assembles action requests and relays them through the
// notification dispatcher.
type Processor struct {
	dispatcher notify.Dispatcher
	now        func() time.Time
}

// NewProcessor creates a processor backed by the given dispatcher.
func NewProcessor(dispatcher notify.Dispatcher) *Processor {
	return &Processor{dispatcher: dispatcher, now: time.Now}
}

var kinds = map[chat.Action]struct {
	request string
	label   string
}{
	chat.ActionRefund: {"Refund Request", "refund"},
	chat.ActionCancel: {"Cancellation Request", "cancellation"},
	chat.ActionUpdate: {"Payment Update Request", "payment update"},
}

// Process builds the ActionRequest for the selected transaction, dispatches
// it, and maps the result to the user-facing confirmation wording.
func (p *Processor) Process(ctx context.Context, act chat.Action, tx transaction.Transaction, requesterEmail string) Result {
	kind, ok := kinds[act]
	if !ok {
		return Result{
			Success: false,
			Message: "I'm not sure what action you want to take. Please specify if you want a refund, cancellation, or payment method update.",
		}
	}

	req := buildRequest(kind.request, tx, requesterEmail, p.now().UTC())

	var err error
	switch act {
	case chat.ActionRefund:
		err = p.dispatcher.SendRefundRequest(ctx, req)
	case chat.ActionCancel:
		err = p.dispatcher.SendCancellationRequest(ctx, req)
	case chat.ActionUpdate:
		err = p.dispatcher.SendPaymentUpdateRequest(ctx, req)
	}

	if err != nil {
		return Result{Success: false, Message: softFailureMessage(kind.label, tx)}
	}
	return Result{Success: true, Message: successMessage(kind.label, tx)}
}

func buildRequest(kind string, tx transaction.Transaction, requesterEmail string, at time.Time) transaction.ActionRequest {
	return transaction.ActionRequest{
		Kind:           kind,
		TransactionID:  tx.ID,
		CustomerName:   tx.CustomerName,
		CustomerEmail:  tx.CustomerEmail,
		RequesterEmail: requesterEmail,
		LastFourDigits: tx.LastFourDigits,
		Amount:         fmt.Sprintf("$%.2f", tx.Amount),
		Date:           tx.Date,
		Status:         string(tx.Status),
		Merchant:       tx.Merchant,
		Invoice:        tx.Invoice,
		CardType:       tx.CardType,
		Response:       tx.Response,
		Source:         tx.Source,
		Message:        tx.Message,
		RequestedAt:    at,
	}
}

func successMessage(label string, tx transaction.Transaction) string {
	return fmt.Sprintf(`Your %[1]s request for transaction %[2]s has been processed and sent to our support team.

You'll receive a confirmation email within the next few hours. The %[1]s will be processed in 3-5 business days and applied to the card ending in %[3]s.

Is there anything else I can help you with?`, label, tx.ID, tx.LastFourDigits)
}

func softFailureMessage(label string, tx transaction.Transaction) string {
	return fmt.Sprintf(`Your %[1]s request for transaction %[2]s has been submitted, but there was an issue sending the confirmation email.

Our team will process your request manually and you should receive confirmation within 24 hours. The %[1]s will be applied to the card ending in %[3]s.

Is there anything else I can help you with?`, label, tx.ID, tx.LastFourDigits)
}
