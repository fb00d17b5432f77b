package transaction

import (
	"context"
	"time"
)

// Status mirrors the processor's settlement states.
type Status string

const (
	StatusCompleted Status = "Completed"
	StatusPending   Status = "Pending"
	StatusFailed    Status = "Failed"
	StatusRefunded  Status = "Refunded"
)

// Transaction is a read-only projection of one card transaction. The bot only
// holds copies for the duration of a session; the repository owns the data.
type Transaction struct {
	ID             string  `json:"id"`
	CustomerName   string  `json:"customerName"`
	CustomerEmail  string  `json:"email"`
	LastFourDigits string  `json:"lastFourDigits"`
	Date           string  `json:"transactionDate"`
	Amount         float64 `json:"amount"`
	Merchant       string  `json:"merchant"`
	Status         Status  `json:"status"`
	CardType       string  `json:"cardType,omitempty"`
	Invoice        string  `json:"invoice,omitempty"`
	Response       string  `json:"response,omitempty"`
	Message        string  `json:"message,omitempty"`
	Source         string  `json:"source,omitempty"`
}

// ActionRequest is the payload relayed to the support inbox for one refund,
// cancellation, or payment-update request. It is assembled at dispatch time
// and never persisted.
type ActionRequest struct {
	Kind           string    `json:"kind"`
	TransactionID  string    `json:"transactionId"`
	CustomerName   string    `json:"customerName"`
	CustomerEmail  string    `json:"customerEmail"`
	RequesterEmail string    `json:"requesterEmail,omitempty"`
	LastFourDigits string    `json:"lastFourDigits"`
	Amount         string    `json:"amount"`
	Date           string    `json:"date"`
	Status         string    `json:"status"`
	Merchant       string    `json:"merchant"`
	Invoice        string    `json:"invoice,omitempty"`
	CardType       string    `json:"cardType,omitempty"`
	Response       string    `json:"response,omitempty"`
	Source         string    `json:"source,omitempty"`
	Message        string    `json:"message,omitempty"`
	RequestedAt    time.Time `json:"requestedAt"`
}

// Repository searches past transactions by the card's last four digits,
// optionally narrowed to a date as extracted from the customer's message.
type Repository interface {
	SearchByLastFour(ctx context.Context, lastFour, date string) ([]Transaction, error)
}

var monthDayLayouts = []string{"1/2/2006", "January 2, 2006", "January 2 2006"}

// DatePrefix converts a free-text date in one of the accepted forms
// (MM/DD/YYYY, "Month DD, YYYY", "Month YYYY") into an ISO prefix suitable
// for narrowing stored ISO timestamps: "2006-01-02" for day-precise forms,
// "2006-01" for month-year. Unparsable input yields an empty prefix and the
// filter is skipped, matching the lenient behavior of the lookup form.
func DatePrefix(date string) string {
	for _, layout := range monthDayLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("2006-01-02")
		}
	}
	if t, err := time.Parse("January 2006", date); err == nil {
		return t.Format("2006-01")
	}
	return ""
}
