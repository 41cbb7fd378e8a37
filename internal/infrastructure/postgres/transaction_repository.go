package postgres

import (
	"context"
	"fmt"
	"time"

	"rupeeflow/internal/domain/transaction"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, params transaction.CreateTransactionParams) (*transaction.Transaction, error) {
	query := `
		INSERT INTO transactions (id, user_id, title, amount, type, category, transaction_date, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, title, amount, type, category, transaction_date, note, created_at
	`

	tx, err := scanTransaction(r.db.QueryRowContext(
		ctx, query,
		params.ID, params.UserID, params.Title, params.Amount,
		params.Type, params.Category, params.Date, params.Note,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return tx, nil
}

// ListByUserID returns every transaction owned by userID, newest date first.
// Same-date rows keep insertion order (created_at, then id as a stable final
// tie-break).
func (r *TransactionRepository) ListByUserID(ctx context.Context, userID string) ([]*transaction.Transaction, error) {
	query := `
		SELECT id, user_id, title, amount, type, category, transaction_date, note, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY transaction_date DESC, created_at DESC, id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*transaction.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// Update replaces every mutable field of the transaction, but only when it is
// owned by userID. A missing row and a row owned by someone else are both
// transaction.ErrNotFound.
func (r *TransactionRepository) Update(ctx context.Context, userID, id string, params transaction.UpdateTransactionParams) error {
	query := `
		UPDATE transactions
		SET title = $1, amount = $2, type = $3, category = $4, transaction_date = $5, note = $6
		WHERE id = $7 AND user_id = $8
	`

	result, err := r.db.ExecContext(
		ctx, query,
		params.Title, params.Amount, params.Type, params.Category, params.Date, params.Note,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

// DeleteAllByUserID clears the user's ledger. Deleting zero rows is success.
func (r *TransactionRepository) DeleteAllByUserID(ctx context.Context, userID string) error {
	query := `DELETE FROM transactions WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}

	return nil
}

func (r *TransactionRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction
	var date time.Time

	err := row.Scan(
		&tx.ID, &tx.UserID, &tx.Title, &tx.Amount,
		&tx.Type, &tx.Category, &date, &tx.Note, &tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	tx.Date = date.Format(transaction.DateFormat)
	return &tx, nil
}
