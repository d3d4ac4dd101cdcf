package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkarpenko/storefront/internal/domain"
)

func (p *Postgres) Products(brandID int64) ([]domain.Product, error) {
	query := "SELECT id, brand_id, name, description, price, regular_price, stock, category, created_at FROM products"
	args := []any{}
	if brandID != 0 {
		query += " WHERE brand_id = $1"
		args = append(args, brandID)
	}
	query += " ORDER BY id"

	rows, err := p.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error fetching products: %w", err)
	}
	defer closeRows(rows)

	var products []domain.Product
	for rows.Next() {
		var pr domain.Product
		err := rows.Scan(&pr.ID, &pr.BrandID, &pr.Name, &pr.Description, &pr.Price, &pr.RegularPrice, &pr.Stock, &pr.Category, &pr.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning product: %w", err)
		}
		products = append(products, pr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over products: %w", err)
	}

	return products, nil
}

func (p *Postgres) Product(id int64) (*domain.Product, error) {
	row := p.DB.QueryRow(
		"SELECT id, brand_id, name, description, price, regular_price, stock, category, created_at FROM products WHERE id = $1",
		id,
	)

	var pr domain.Product
	err := row.Scan(&pr.ID, &pr.BrandID, &pr.Name, &pr.Description, &pr.Price, &pr.RegularPrice, &pr.Stock, &pr.Category, &pr.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("error fetching product: %w", err)
	}

	return &pr, nil
}

func (p *Postgres) Brands() ([]domain.Brand, error) {
	rows, err := p.DB.Query("SELECT id, name, description, created_at FROM brands ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("error fetching brands: %w", err)
	}
	defer closeRows(rows)

	var brands []domain.Brand
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning brand: %w", err)
		}
		brands = append(brands, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over brands: %w", err)
	}

	return brands, nil
}

func (p *Postgres) Shops() ([]domain.Shop, error) {
	rows, err := p.DB.Query("SELECT id, name, location, created_at FROM shops ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("error fetching shops: %w", err)
	}
	defer closeRows(rows)

	var shops []domain.Shop
	for rows.Next() {
		var s domain.Shop
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning shop: %w", err)
		}
		shops = append(shops, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over shops: %w", err)
	}

	return shops, nil
}
