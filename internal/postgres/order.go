package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkarpenko/storefront/internal/domain"
)

const orderColumns = "id, user_id, product_id, shop_id, quantity, price, size, delivery_date, return_expiry_date, status, paid, created_at"

// CreateOrders inserts the checkout batch in one transaction, so either
// every order of the batch exists or none does.
func (p *Postgres) CreateOrders(orders []domain.Order) ([]domain.Order, error) {
	tx, err := p.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	created := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		err = tx.QueryRow(
			`INSERT INTO orders (user_id, product_id, shop_id, quantity, price, size, delivery_date, return_expiry_date, status, paid)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at`,
			order.UserID, order.ProductID, order.ShopID, order.Quantity, order.Price, order.Size,
			order.DeliveryDate, order.ReturnExpiryDate, order.Status, order.Paid,
		).Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			rollback(tx)
			return nil, fmt.Errorf("error creating order: %w", err)
		}
		created = append(created, order)
	}

	if err = tx.Commit(); err != nil {
		rollback(tx)
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	return created, nil
}

func (p *Postgres) Orders(userID int64) ([]domain.Order, error) {
	rows, err := p.DB.Query(
		"SELECT "+orderColumns+" FROM orders WHERE user_id = $1 ORDER BY id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("error fetching orders: %w", err)
	}
	defer closeRows(rows)

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over orders: %w", err)
	}

	return orders, nil
}

func (p *Postgres) Order(id int64) (*domain.Order, error) {
	row := p.DB.QueryRow("SELECT "+orderColumns+" FROM orders WHERE id = $1", id)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	return order, nil
}

func (p *Postgres) UpdateOrderStatus(id int64, status domain.OrderStatus, paid bool) (*domain.Order, error) {
	row := p.DB.QueryRow(
		"UPDATE orders SET status = $1, paid = $2 WHERE id = $3 RETURNING "+orderColumns,
		status, paid, id,
	)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	return order, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID, &order.UserID, &order.ProductID, &order.ShopID, &order.Quantity, &order.Price,
		&order.Size, &order.DeliveryDate, &order.ReturnExpiryDate, &order.Status, &order.Paid, &order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error scanning order: %w", err)
	}

	return &order, nil
}
