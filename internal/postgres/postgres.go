package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mkarpenko/storefront/internal/domain"
	"github.com/mkarpenko/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

const transactionRollbackError = "error rolling back transaction"

type Postgres struct {
	DB *sql.DB
}

func New(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

func (p *Postgres) Close() error {
	return p.DB.Close()
}

func (p *Postgres) CreateUser(name, email, username, hashedPassword string) (int64, error) {
	var id int64
	err := p.DB.QueryRow(
		"INSERT INTO users (name, email, username, password) VALUES ($1, $2, $3, $4) RETURNING id",
		name, email, username, hashedPassword,
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			logger.Log.Warn("user already exists", logger.String("username", username))
			return 0, domain.ErrUserExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

func (p *Postgres) UserByUsername(username string) (*domain.User, error) {
	row := p.DB.QueryRow(
		"SELECT id, name, email, username, password, wallet_balance, created_at FROM users WHERE username = $1",
		username,
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Username, &user.Password, &user.WalletBalance, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIncorrectCredentials
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	return &user, nil
}

func (p *Postgres) Balance(userID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := p.DB.QueryRow("SELECT wallet_balance FROM users WHERE id = $1", userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, domain.ErrUserNotFound
		}
		return decimal.Zero, fmt.Errorf("error fetching balance: %w", err)
	}

	return balance, nil
}

func (p *Postgres) Credit(userID int64, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error) {
	tx, err := p.DB.Begin()
	if err != nil {
		return decimal.Zero, fmt.Errorf("error starting transaction: %w", err)
	}

	var balance decimal.Decimal
	err = tx.QueryRow(
		"UPDATE users SET wallet_balance = wallet_balance + $1 WHERE id = $2 RETURNING wallet_balance",
		amount, userID,
	).Scan(&balance)
	if err != nil {
		rollback(tx)
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, domain.ErrUserNotFound
		}
		return decimal.Zero, fmt.Errorf("error crediting wallet: %w", err)
	}

	if err = insertTransaction(tx, userID, amount, kind); err != nil {
		rollback(tx)
		return decimal.Zero, err
	}

	if err = tx.Commit(); err != nil {
		rollback(tx)
		return decimal.Zero, fmt.Errorf("error committing transaction: %w", err)
	}

	return balance, nil
}

// Debit subtracts with a conditional update so the balance can never go
// below zero, even under concurrent requests for the same user.
func (p *Postgres) Debit(userID int64, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error) {
	tx, err := p.DB.Begin()
	if err != nil {
		return decimal.Zero, fmt.Errorf("error starting transaction: %w", err)
	}

	var exists bool
	err = tx.QueryRow("SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)", userID).Scan(&exists)
	if err != nil {
		rollback(tx)
		return decimal.Zero, fmt.Errorf("error checking user: %w", err)
	}
	if !exists {
		rollback(tx)
		return decimal.Zero, domain.ErrUserNotFound
	}

	var balance decimal.Decimal
	err = tx.QueryRow(
		"UPDATE users SET wallet_balance = wallet_balance - $1 WHERE id = $2 AND wallet_balance >= $1 RETURNING wallet_balance",
		amount, userID,
	).Scan(&balance)
	if err != nil {
		rollback(tx)
		if errors.Is(err, sql.ErrNoRows) {
			logger.Log.Warn("insufficient funds", logger.Int64("user_id", userID), logger.String("amount", amount.String()))
			return decimal.Zero, domain.ErrInsufficientFunds
		}
		return decimal.Zero, fmt.Errorf("error debiting wallet: %w", err)
	}

	if err = insertTransaction(tx, userID, amount.Neg(), kind); err != nil {
		rollback(tx)
		return decimal.Zero, err
	}

	if err = tx.Commit(); err != nil {
		rollback(tx)
		return decimal.Zero, fmt.Errorf("error committing transaction: %w", err)
	}

	return balance, nil
}

func (p *Postgres) Transactions(userID int64) ([]domain.WalletTransaction, error) {
	rows, err := p.DB.Query(
		"SELECT id, user_id, amount, kind, created_at FROM wallet_transactions WHERE user_id = $1 ORDER BY created_at",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("error fetching transactions: %w", err)
	}
	defer closeRows(rows)

	var txs []domain.WalletTransaction
	for rows.Next() {
		var t domain.WalletTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Kind, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning transaction: %w", err)
		}
		txs = append(txs, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over transactions: %w", err)
	}

	return txs, nil
}

func insertTransaction(tx *sql.Tx, userID int64, amount decimal.Decimal, kind domain.TransactionKind) error {
	_, err := tx.Exec(
		"INSERT INTO wallet_transactions (id, user_id, amount, kind) VALUES ($1, $2, $3, $4)",
		uuid.NewString(), userID, amount, kind,
	)
	if err != nil {
		return fmt.Errorf("error recording wallet transaction: %w", err)
	}

	return nil
}

func rollback(tx *sql.Tx) {
	err := tx.Rollback()
	if err != nil {
		logger.Log.Error(transactionRollbackError, logger.Error(err))
	}
}

func closeRows(rows *sql.Rows) {
	err := rows.Close()
	if err != nil {
		logger.Log.Error("error closing rows", logger.Error(err))
	}
}
