// Package store provides the SQLite-backed transaction repository.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sterling-assoc/supportbot/internal/model/transaction"
)

// SQLiteRepository implements transaction.Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLite opens (creating if necessary) the transaction database at dbPath.
func NewSQLite(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// WAL mode for read-mostly concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return repo, nil
}

func (r *SQLiteRepository) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS transactions (
		transaction_id TEXT PRIMARY KEY,
		customer TEXT NOT NULL,
		customer_email TEXT,
		card_number TEXT NOT NULL,
		card_type TEXT,
		amount REAL NOT NULL,
		merchant TEXT,
		status TEXT NOT NULL,
		response TEXT,
		invoice TEXT,
		source TEXT,
		message TEXT,
		created TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_transactions_card_tail ON transactions(substr(card_number, -4));
	`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// SearchByLastFour returns transactions whose card number ends with lastFour,
// optionally narrowed to the day or month named by date.
func (r *SQLiteRepository) SearchByLastFour(ctx context.Context, lastFour, date string) ([]transaction.Transaction, error) {
	query := `
		SELECT transaction_id, customer, customer_email, card_number, card_type,
		       amount, merchant, status, response, invoice, source, message, created
		FROM transactions
		WHERE substr(card_number, -4) = ?`
	args := []any{lastFour}

	if date != "" {
		if prefix := transaction.DatePrefix(date); prefix != "" {
			query += ` AND created LIKE ?`
			args = append(args, prefix+"%")
		}
	}
	query += ` ORDER BY created DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var found []transaction.Transaction
	for rows.Next() {
		var tx transaction.Transaction
		var cardNumber string
		var customerEmail, cardType, merchant, response, invoice, source, message sql.NullString

		err := rows.Scan(
			&tx.ID, &tx.CustomerName, &customerEmail, &cardNumber, &cardType,
			&tx.Amount, &merchant, &tx.Status, &response, &invoice, &source, &message, &tx.Date,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}

		if len(cardNumber) >= 4 {
			tx.LastFourDigits = cardNumber[len(cardNumber)-4:]
		}
		tx.CustomerEmail = customerEmail.String
		tx.CardType = cardType.String
		tx.Merchant = merchant.String
		tx.Response = response.String
		tx.Invoice = invoice.String
		tx.Source = source.String
		tx.Message = message.String

		found = append(found, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return found, nil
}

// Insert stores one transaction, used for seeding and tests.
func (r *SQLiteRepository) Insert(ctx context.Context, tx transaction.Transaction, cardNumber string) error {
	query := `
		INSERT INTO transactions (
			transaction_id, customer, customer_email, card_number, card_type,
			amount, merchant, status, response, invoice, source, message, created
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID, tx.CustomerName, tx.CustomerEmail, cardNumber, tx.CardType,
		tx.Amount, tx.Merchant, string(tx.Status), tx.Response, tx.Invoice, tx.Source, tx.Message, tx.Date,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}
