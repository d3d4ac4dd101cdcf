package memstore

import (
	"fmt"

	"github.com/mkarpenko/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// Seed loads a small demo catalog so the store is browsable out of the box.
func (m *MemStore) Seed() error {
	brands := []domain.Brand{
		{Name: "Northwind", Description: "Outdoor and travel gear"},
		{Name: "Velvet & Oak", Description: "Apparel and accessories"},
		{Name: "Kiln", Description: "Home and kitchen"},
	}

	brandIDs := make([]int64, 0, len(brands))
	for _, b := range brands {
		created, err := m.CreateBrand(b)
		if err != nil {
			return fmt.Errorf("error seeding brand: %w", err)
		}
		brandIDs = append(brandIDs, created.ID)
	}

	shops := []domain.Shop{
		{Name: "Central Store", Location: "Main St 12"},
		{Name: "Harbor Outlet", Location: "Dock Rd 3"},
	}
	for _, s := range shops {
		if _, err := m.CreateShop(s); err != nil {
			return fmt.Errorf("error seeding shop: %w", err)
		}
	}

	products := []domain.Product{
		{BrandID: brandIDs[0], Name: "Trail Backpack 30L", Price: price("89.99"), RegularPrice: price("109.99"), Stock: 25, Category: "outdoor"},
		{BrandID: brandIDs[0], Name: "Insulated Bottle", Price: price("24.50"), RegularPrice: price("24.50"), Stock: 80, Category: "outdoor"},
		{BrandID: brandIDs[1], Name: "Linen Shirt", Price: price("49.00"), RegularPrice: price("59.00"), Stock: 40, Category: "apparel"},
		{BrandID: brandIDs[1], Name: "Wool Scarf", Price: price("32.90"), RegularPrice: price("32.90"), Stock: 60, Category: "apparel"},
		{BrandID: brandIDs[2], Name: "Ceramic Mug Set", Price: price("38.00"), RegularPrice: price("45.00"), Stock: 35, Category: "home"},
		{BrandID: brandIDs[2], Name: "Cast Iron Pan", Price: price("74.95"), RegularPrice: price("74.95"), Stock: 15, Category: "home"},
	}
	for _, p := range products {
		if _, err := m.CreateProduct(p); err != nil {
			return fmt.Errorf("error seeding product: %w", err)
		}
	}

	return nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
