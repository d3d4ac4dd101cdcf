package cataloghandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mkarpenko/storefront/internal/domain"
	"github.com/mkarpenko/storefront/pkg/dto"
	"github.com/mkarpenko/storefront/pkg/logger"
)

type catalogService interface {
	Products(brandID int64) ([]domain.Product, error)
	Product(id int64) (*domain.Product, error)
	Brands() ([]domain.Brand, error)
	Shops() ([]domain.Shop, error)
}

type CatalogHandler struct {
	srv catalogService
}

func New(srv catalogService) *CatalogHandler {
	return &CatalogHandler{
		srv: srv,
	}
}

func (h CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	var brandID int64
	if raw := r.URL.Query().Get("brand_id"); raw != "" {
		var err error
		brandID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid brand_id", http.StatusBadRequest)
			return
		}
	}

	products, err := h.srv.Products(brandID)
	if err != nil {
		logger.Log.Error("error while fetching products", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	dtos := make([]dto.Product, len(products))
	for i, p := range products {
		dtos[i] = toProduct(p)
	}

	writeJSON(w, dtos)
}

func (h CatalogHandler) Product(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	product, err := h.srv.Product(id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found: "+strconv.FormatInt(id, 10), http.StatusNotFound)
			return
		}
		logger.Log.Error("error while fetching product", logger.Int64("product_id", id), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toProduct(*product))
}

func (h CatalogHandler) Brands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.srv.Brands()
	if err != nil {
		logger.Log.Error("error while fetching brands", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	dtos := make([]dto.Brand, len(brands))
	for i, b := range brands {
		dtos[i] = dto.Brand{ID: b.ID, Name: b.Name, Description: b.Description}
	}

	writeJSON(w, dtos)
}

func (h CatalogHandler) Shops(w http.ResponseWriter, r *http.Request) {
	shops, err := h.srv.Shops()
	if err != nil {
		logger.Log.Error("error while fetching shops", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	dtos := make([]dto.Shop, len(shops))
	for i, s := range shops {
		dtos[i] = dto.Shop{ID: s.ID, Name: s.Name, Location: s.Location}
	}

	writeJSON(w, dtos)
}

func toProduct(p domain.Product) dto.Product {
	return dto.Product{
		ID:           p.ID,
		BrandID:      p.BrandID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		RegularPrice: p.RegularPrice,
		Stock:        p.Stock,
		Category:     p.Category,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("error while encoding response to JSON", logger.Error(err))
	}
}
