package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkarpenko/storefront/internal/domain"
)

func (p *Postgres) CreateReturn(ret domain.Return) (*domain.Return, error) {
	err := p.DB.QueryRow(
		"INSERT INTO returns (order_id, reason, status, refund_amount) VALUES ($1, $2, $3, $4) RETURNING id, created_at",
		ret.OrderID, ret.Reason, ret.Status, ret.RefundAmount,
	).Scan(&ret.ID, &ret.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating return: %w", err)
	}

	return &ret, nil
}

func (p *Postgres) Return(id int64) (*domain.Return, error) {
	row := p.DB.QueryRow(
		"SELECT id, order_id, reason, status, refund_amount, created_at FROM returns WHERE id = $1",
		id,
	)

	var ret domain.Return
	err := row.Scan(&ret.ID, &ret.OrderID, &ret.Reason, &ret.Status, &ret.RefundAmount, &ret.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReturnNotFound
		}
		return nil, fmt.Errorf("error fetching return: %w", err)
	}

	return &ret, nil
}

// Returns lists the caller's returns through order ownership; a return
// record itself carries no user id.
func (p *Postgres) Returns(userID int64) ([]domain.Return, error) {
	rows, err := p.DB.Query(
		`SELECT r.id, r.order_id, r.reason, r.status, r.refund_amount, r.created_at
		 FROM returns r
		 JOIN orders o ON o.id = r.order_id
		 WHERE o.user_id = $1
		 ORDER BY r.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("error fetching returns: %w", err)
	}
	defer closeRows(rows)

	var returns []domain.Return
	for rows.Next() {
		var ret domain.Return
		if err := rows.Scan(&ret.ID, &ret.OrderID, &ret.Reason, &ret.Status, &ret.RefundAmount, &ret.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning return: %w", err)
		}
		returns = append(returns, ret)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over returns: %w", err)
	}

	return returns, nil
}

func (p *Postgres) ActiveReturnExists(orderID int64) (bool, error) {
	var exists bool
	err := p.DB.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM returns WHERE order_id = $1 AND status <> 'rejected')",
		orderID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking for active return: %w", err)
	}

	return exists, nil
}

func (p *Postgres) UpdateReturnStatus(id int64, status domain.ReturnStatus) (*domain.Return, error) {
	row := p.DB.QueryRow(
		"UPDATE returns SET status = $1 WHERE id = $2 RETURNING id, order_id, reason, status, refund_amount, created_at",
		status, id,
	)

	var ret domain.Return
	err := row.Scan(&ret.ID, &ret.OrderID, &ret.Reason, &ret.Status, &ret.RefundAmount, &ret.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReturnNotFound
		}
		return nil, fmt.Errorf("error updating return status: %w", err)
	}

	return &ret, nil
}
