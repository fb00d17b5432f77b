package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/sterling-assoc/supportbot/internal/model/transaction"
)

// Subject builds the inbox subject line for an action request.
func Subject(req transaction.ActionRequest) string {
	return fmt.Sprintf("%s - Transaction ID: %s", req.Kind, req.TransactionID)
}

// Body renders the plaintext request the support team reads.
func Body(req transaction.ActionRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s - STERLING & ASSOCIATES\n\n", strings.ToUpper(req.Kind))
	b.WriteString("Request Details:\n================\n")
	fmt.Fprintf(&b, "Request Date: %s\n", req.RequestedAt.Format(time.RFC1123))
	fmt.Fprintf(&b, "Request Type: %s\n\n", req.Kind)

	b.WriteString("Transaction Information:\n=======================\n")
	fmt.Fprintf(&b, "Transaction ID: %s\n", req.TransactionID)
	fmt.Fprintf(&b, "Customer Name: %s\n", orNA(req.CustomerName))
	fmt.Fprintf(&b, "Customer Email: %s\n", orNA(req.CustomerEmail))
	fmt.Fprintf(&b, "Requester Email: %s\n", orNA(req.RequesterEmail))
	fmt.Fprintf(&b, "Card Ending in: ....%s\n", req.LastFourDigits)
	fmt.Fprintf(&b, "Amount: %s\n", req.Amount)
	fmt.Fprintf(&b, "Transaction Date: %s\n", req.Date)
	fmt.Fprintf(&b, "Status: %s\n", req.Status)
	fmt.Fprintf(&b, "Merchant: %s\n", orNA(req.Merchant))
	fmt.Fprintf(&b, "Invoice: %s\n", orNA(req.Invoice))
	fmt.Fprintf(&b, "Card Type: %s\n", orNA(req.CardType))
	fmt.Fprintf(&b, "Response: %s\n", orNA(req.Response))
	fmt.Fprintf(&b, "Source: %s\n\n", orNA(req.Source))

	b.WriteString("Action Required:\n===============\n")
	fmt.Fprintf(&b, "Please process the %s for the above transaction.\n\n", strings.ToLower(req.Kind))
	b.WriteString("This request was submitted through the Sterling & Associates customer portal.\n\n")
	b.WriteString("---\nSterling & Associates\nCustomer Support System")

	return b.String()
}
