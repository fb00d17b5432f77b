package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/sterling-assoc/supportbot/internal/model/transaction"
)

const (
	greetingMessage = `Hello! I'm the virtual assistant for Sterling & Associates. I can help you find your transactions and resolve billing issues.

To get started, I'll need the last 4 digits of the card you used. If you remember the approximate date of the transaction you can mention it too, but it's optional.`

	cardRepromptMessage = `I need the last 4 digits of your card to search for your transaction. Please provide exactly 4 digits (numbers only), for example: 1234.`

	emailPromptMessage = `To process your refund I need an email address where we can send the confirmation. What email should we use?`

	emailRepromptMessage = `That doesn't look like a valid email address. Please provide it as name@example.com.`

	optionsMessage = `What would you like to do with your transaction? I can help you with refunds, cancellations, or payment method updates.`

	lostTrackMessage = `I seem to have lost your transaction information. Let me start over.`

	searchErrorMessage = `There was a problem searching for your transaction. Please try again or contact our support team.`

	apologyMessage = `I apologize, I'm experiencing technical difficulties. Could you please try again or contact our support team?`
)

var (
	actionSuggestions = []string{"Request refund", "Cancel subscription", "Update payment method", "More information"}
	doneSuggestions   = []string{"Check status", "Another inquiry", "End conversation"}
	retrySuggestions  = []string{"Try again", "Contact support"}
)

func notFoundMessage(lastFour, date string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I couldn't find any transactions with the card ending in %s", lastFour)
	if date != "" {
		fmt.Fprintf(&b, " around %s", date)
	}
	b.WriteString(".\n\nPlease verify the last 4 digits are correct")
	if date != "" {
		b.WriteString(" and that the date matches your statement")
	}
	b.WriteString(", then try again.")
	return b.String()
}

func summaryMessage(tx transaction.Transaction) string {
	return fmt.Sprintf(`Perfect! I found your transaction:

%s

What would you like to do with this transaction?`, describe(tx))
}

func selectionMessage(tx transaction.Transaction) string {
	return fmt.Sprintf(`Got it, I've selected this transaction:

%s

What would you like to do with this transaction?`, describe(tx))
}

func listMessage(lastFour string, found []transaction.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I found %d transactions with your card ending in %s:\n", len(found), lastFour)
	for i, tx := range found {
		fmt.Fprintf(&b, "\nTransaction %d:\n%s\n", i+1, describe(tx))
	}
	b.WriteString("\nPlease tell me which one you'd like to work with: the transaction ID, the customer name, or just \"Transaction 1\", \"Transaction 2\", and so on.")
	return b.String()
}

func listSuggestions(found []transaction.Transaction) []string {
	suggestions := make([]string, len(found))
	for i := range found {
		suggestions[i] = fmt.Sprintf("Transaction %d", i+1)
	}
	return suggestions
}

func describe(tx transaction.Transaction) string {
	date := tx.Date
	if t, err := time.Parse(time.RFC3339, tx.Date); err == nil {
		date = t.Format("01/02/2006")
	}
	return fmt.Sprintf("Customer: %s\nDate: %s\nAmount: $%.2f\nID: %s\nStatus: %s",
		tx.CustomerName, date, tx.Amount, tx.ID, tx.Status)
}
