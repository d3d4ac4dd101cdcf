package service

import (
	"time"

	"github.com/mkarpenko/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type cartRepository interface {
	CreateCartItem(item domain.CartItem) (*domain.CartItem, error)
	CartItem(id int64) (*domain.CartItem, error)
	UpdateCartItem(item domain.CartItem) (*domain.CartItem, error)
	DeleteCartItem(id int64) error
	CartLines(userID int64) ([]domain.CartLine, error)
	ClearCart(userID int64) error
}

type productReader interface {
	Product(id int64) (*domain.Product, error)
}

type CartService struct {
	repo     cartRepository
	products productReader
}

func NewCartService(repo cartRepository, products productReader) *CartService {
	return &CartService{
		repo:     repo,
		products: products,
	}
}

// Lines returns the cart joined with live catalog data and its derived
// total. The total reflects current product prices, so it can differ from
// the eventual order total if a price changes before checkout.
func (s *CartService) Lines(userID int64) ([]domain.CartLine, decimal.Decimal, error) {
	lines, err := s.repo.CartLines(userID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	return lines, total, nil
}

func (s *CartService) Add(userID, productID, shopID int64, quantity int, size string, deliveryDate *time.Time) (*domain.CartItem, error) {
	if _, err := s.products.Product(productID); err != nil {
		return nil, err
	}

	if shopID == 0 {
		shopID = 1
	}

	return s.repo.CreateCartItem(domain.CartItem{
		UserID:       userID,
		ProductID:    productID,
		ShopID:       shopID,
		Quantity:     quantity,
		Size:         size,
		DeliveryDate: deliveryDate,
	})
}

func (s *CartService) Update(id, userID int64, quantity *int, size *string, deliveryDate *time.Time) (*domain.CartItem, error) {
	item, err := s.owned(id, userID)
	if err != nil {
		return nil, err
	}

	if quantity != nil {
		if *quantity < 1 {
			return nil, domain.ErrInvalidOrderData
		}
		item.Quantity = *quantity
	}
	if size != nil {
		item.Size = *size
	}
	if deliveryDate != nil {
		item.DeliveryDate = deliveryDate
	}

	return s.repo.UpdateCartItem(*item)
}

func (s *CartService) Remove(id, userID int64) error {
	if _, err := s.owned(id, userID); err != nil {
		return err
	}

	return s.repo.DeleteCartItem(id)
}

func (s *CartService) Clear(userID int64) error {
	return s.repo.ClearCart(userID)
}

// owned reports an item that doesn't belong to the caller as not found,
// so line ids can't be probed across users.
func (s *CartService) owned(id, userID int64) (*domain.CartItem, error) {
	item, err := s.repo.CartItem(id)
	if err != nil {
		return nil, err
	}

	if item.UserID != userID {
		return nil, domain.ErrCartItemNotFound
	}

	return item, nil
}
