package chat

import (
	"time"

	"github.com/sterling-assoc/supportbot/internal/model/transaction"
)

// Step identifies the conversation's position in the scripted flow.
type Step string

const (
	StepGreeting        Step = "greeting"
	StepCollectingCard  Step = "collecting_card"
	StepResults         Step = "results"
	StepCollectingEmail Step = "collecting_email"
	StepProcessing      Step = "processing"
)

// Action is a follow-up the customer can request against a transaction.
type Action string

const (
	ActionRefund Action = "refund"
	ActionCancel Action = "cancel"
	ActionUpdate Action = "update"
)

// Session captures one customer's transient conversation with the assistant.
type Session struct {
	ID           string    `json:"id"`
	State        State     `json:"state"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}

// State is mutated once per turn by the active step handler. Selected, when
// present, is always one of Found.
type State struct {
	Step            Step                      `json:"step"`
	LastFourDigits  string                    `json:"lastFourDigits,omitempty"`
	TransactionDate string                    `json:"transactionDate,omitempty"`
	Found           []transaction.Transaction `json:"foundTransactions,omitempty"`
	Selected        *transaction.Transaction  `json:"selectedTransaction,omitempty"`
	UserEmail       string                    `json:"userEmail,omitempty"`
	PendingAction   Action                    `json:"pendingAction,omitempty"`
}

// NewState returns the state a fresh session starts in.
func NewState() State {
	return State{Step: StepGreeting}
}

// Reset clears everything a new inquiry should not see. The customer's email
// survives so a second refund in the same session skips the email step.
func (s State) Reset() State {
	return State{Step: StepGreeting, UserEmail: s.UserEmail}
}

// Response is what one processed turn hands back to the widget.
type Response struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
	State       State    `json:"state"`
}
