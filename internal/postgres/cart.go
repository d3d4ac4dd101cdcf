package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkarpenko/storefront/internal/domain"
)

func (p *Postgres) CreateCartItem(item domain.CartItem) (*domain.CartItem, error) {
	err := p.DB.QueryRow(
		`INSERT INTO cart_items (user_id, product_id, shop_id, quantity, size, delivery_date)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		item.UserID, item.ProductID, item.ShopID, item.Quantity, item.Size, item.DeliveryDate,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating cart item: %w", err)
	}

	return &item, nil
}

func (p *Postgres) CartItem(id int64) (*domain.CartItem, error) {
	row := p.DB.QueryRow(
		"SELECT id, user_id, product_id, shop_id, quantity, size, delivery_date, created_at FROM cart_items WHERE id = $1",
		id,
	)

	var item domain.CartItem
	err := row.Scan(&item.ID, &item.UserID, &item.ProductID, &item.ShopID, &item.Quantity, &item.Size, &item.DeliveryDate, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("error fetching cart item: %w", err)
	}

	return &item, nil
}

func (p *Postgres) UpdateCartItem(item domain.CartItem) (*domain.CartItem, error) {
	result, err := p.DB.Exec(
		"UPDATE cart_items SET quantity = $1, size = $2, delivery_date = $3 WHERE id = $4",
		item.Quantity, item.Size, item.DeliveryDate, item.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("error updating cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("error checking rows affected for cart item update: %w", err)
	}
	if rowsAffected == 0 {
		return nil, domain.ErrCartItemNotFound
	}

	return &item, nil
}

func (p *Postgres) DeleteCartItem(id int64) error {
	result, err := p.DB.Exec("DELETE FROM cart_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error deleting cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected for cart item delete: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrCartItemNotFound
	}

	return nil
}

// CartLines joins product and shop at read time so the view always carries
// live catalog data instead of stale embedded copies.
func (p *Postgres) CartLines(userID int64) ([]domain.CartLine, error) {
	rows, err := p.DB.Query(
		`SELECT ci.id, ci.user_id, ci.product_id, ci.shop_id, ci.quantity, ci.size, ci.delivery_date, ci.created_at,
		        pr.id, pr.brand_id, pr.name, pr.description, pr.price, pr.regular_price, pr.stock, pr.category, pr.created_at,
		        s.id, s.name, s.location, s.created_at
		 FROM cart_items ci
		 JOIN products pr ON pr.id = ci.product_id
		 JOIN shops s ON s.id = ci.shop_id
		 WHERE ci.user_id = $1
		 ORDER BY ci.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("error fetching cart lines: %w", err)
	}
	defer closeRows(rows)

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		err := rows.Scan(
			&line.ID, &line.UserID, &line.ProductID, &line.ShopID, &line.Quantity, &line.Size, &line.DeliveryDate, &line.CreatedAt,
			&line.Product.ID, &line.Product.BrandID, &line.Product.Name, &line.Product.Description, &line.Product.Price,
			&line.Product.RegularPrice, &line.Product.Stock, &line.Product.Category, &line.Product.CreatedAt,
			&line.Shop.ID, &line.Shop.Name, &line.Shop.Location, &line.Shop.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning cart line: %w", err)
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over cart lines: %w", err)
	}

	return lines, nil
}

func (p *Postgres) ClearCart(userID int64) error {
	_, err := p.DB.Exec("DELETE FROM cart_items WHERE user_id = $1", userID)
	if err != nil {
		return fmt.Errorf("error clearing cart: %w", err)
	}

	return nil
}
