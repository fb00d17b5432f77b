package transaction

import (
	"context"
	"strings"
)

// MemoryRepository implements Repository over a fixed slice, suitable for
// local development and tests.
type MemoryRepository struct {
	items []Transaction
}

// NewMemoryRepository returns a MemoryRepository preloaded with the supplied
// transactions.
func NewMemoryRepository(items []Transaction) *MemoryRepository {
	return &MemoryRepository{items: append([]Transaction(nil), items...)}
}

// SearchByLastFour filters the seeded transactions by card digits and,
// when a date is given, by day or month prefix.
func (r *MemoryRepository) SearchByLastFour(_ context.Context, lastFour, date string) ([]Transaction, error) {
	prefix := ""
	if date != "" {
		prefix = DatePrefix(date)
	}

	var found []Transaction
	for _, item := range r.items {
		if item.LastFourDigits != lastFour {
			continue
		}
		if prefix != "" && !strings.HasPrefix(item.Date, prefix) {
			continue
		}
		found = append(found, item)
	}
	return found, nil
}

// Seed returns demo transactions for running without a database.
func Seed() []Transaction {
	return []Transaction{
		{
			ID:             "SA04149207",
			CustomerName:   "Juan Perez",
			CustomerEmail:  "juan.perez@example.com",
			LastFourDigits: "1234",
			Date:           "2025-06-15T14:30:00Z",
			Amount:         49.99,
			Merchant:       "TechFlow Solutions",
			Status:         StatusCompleted,
			CardType:       "Visa",
			Response:       "Approved",
			Source:         "web",
		},
		{
			ID:             "SA04149208",
			CustomerName:   "Maria Garcia",
			CustomerEmail:  "maria.garcia@example.com",
			LastFourDigits: "5678",
			Date:           "2025-07-02T09:12:00Z",
			Amount:         29.99,
			Merchant:       "Digital Services Inc",
			Status:         StatusCompleted,
			CardType:       "Master",
			Response:       "Approved",
			Source:         "web",
		},
		{
			ID:             "SA04149209",
			CustomerName:   "Carlos Lopez",
			CustomerEmail:  "carlos.lopez@example.com",
			LastFourDigits: "9012",
			Date:           "2025-07-06T18:45:00Z",
			Amount:         99.99,
			Merchant:       "Cloud Solutions Pro",
			Status:         StatusPending,
			CardType:       "Amex",
			Response:       "Approved",
			Source:         "web",
		},
		{
			ID:             "SA04149210",
			CustomerName:   "Ana Martinez",
			CustomerEmail:  "ana.martinez@example.com",
			LastFourDigits: "9012",
			Date:           "2025-05-21T11:05:00Z",
			Amount:         19.99,
			Merchant:       "Software Plus",
			Status:         StatusCompleted,
			CardType:       "Visa",
			Response:       "Approved",
			Source:         "web",
		},
	}
}
