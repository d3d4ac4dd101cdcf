package service

import "github.com/mkarpenko/storefront/internal/domain"

type catalogRepository interface {
	Products(brandID int64) ([]domain.Product, error)
	Product(id int64) (*domain.Product, error)
	Brands() ([]domain.Brand, error)
	Shops() ([]domain.Shop, error)
}

// CatalogService is a thin read surface; the core only needs existence
// checks and price reads from it.
type CatalogService struct {
	repo catalogRepository
}

func NewCatalogService(repo catalogRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// Products lists the catalog, optionally filtered by brand (0 means all).
func (s *CatalogService) Products(brandID int64) ([]domain.Product, error) {
	return s.repo.Products(brandID)
}

func (s *CatalogService) Product(id int64) (*domain.Product, error) {
	return s.repo.Product(id)
}

func (s *CatalogService) Brands() ([]domain.Brand, error) {
	return s.repo.Brands()
}

func (s *CatalogService) Shops() ([]domain.Shop, error) {
	return s.repo.Shops()
}
