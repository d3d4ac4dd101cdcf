package carthandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mkarpenko/storefront/internal/domain"
	"github.com/mkarpenko/storefront/pkg/dto"
	"github.com/mkarpenko/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

type cartService interface {
	Lines(userID int64) ([]domain.CartLine, decimal.Decimal, error)
	Add(userID, productID, shopID int64, quantity int, size string, deliveryDate *time.Time) (*domain.CartItem, error)
	Update(id, userID int64, quantity *int, size *string, deliveryDate *time.Time) (*domain.CartItem, error)
	Remove(id, userID int64) error
	Clear(userID int64) error
}

type CartHandler struct {
	srv cartService
}

func New(srv cartService) *CartHandler {
	return &CartHandler{
		srv: srv,
	}
}

func (h CartHandler) Cart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	lines, total, err := h.srv.Lines(userID)
	if err != nil {
		logger.Log.Error("error while fetching cart", logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp := dto.Cart{
		Items: make([]dto.CartLine, len(lines)),
		Total: total,
	}
	for i, line := range lines {
		resp.Items[i] = toCartLine(line)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	var req dto.AddCartItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("error while decoding an add-to-cart request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := req.IsValid(); err != nil {
		logger.Log.Warn("invalid cart item fields", logger.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.srv.Add(userID, req.ProductID, req.ShopID, req.Quantity, req.Size, req.DeliveryDate)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found: "+strconv.FormatInt(req.ProductID, 10), http.StatusBadRequest)
			return
		}
		logger.Log.Error("error while adding cart item", logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toCartItem(*item))
}

func (h CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var req dto.UpdateCartItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("error while decoding a cart update request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	item, err := h.srv.Update(itemID, userID, req.Quantity, req.Size, req.DeliveryDate)
	if err != nil {
		h.writeCartError(w, userID, itemID, err)
		return
	}

	writeJSON(w, http.StatusOK, toCartItem(*item))
}

func (h CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.srv.Remove(itemID, userID); err != nil {
		h.writeCartError(w, userID, itemID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.srv.Clear(userID); err != nil {
		logger.Log.Error("error while clearing cart", logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) writeCartError(w http.ResponseWriter, userID, itemID int64, err error) {
	switch {
	case errors.Is(err, domain.ErrCartItemNotFound):
		http.Error(w, "cart item not found: "+strconv.FormatInt(itemID, 10), http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidOrderData):
		http.Error(w, "quantity must be at least 1", http.StatusBadRequest)
	default:
		logger.Log.Error("cart operation failed", logger.Int64("user_id", userID), logger.Int64("item_id", itemID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func toCartLine(line domain.CartLine) dto.CartLine {
	out := dto.CartLine{
		ID:        line.ID,
		ProductID: line.ProductID,
		ShopID:    line.ShopID,
		Quantity:  line.Quantity,
		Size:      line.Size,
		Product: dto.Product{
			ID:           line.Product.ID,
			BrandID:      line.Product.BrandID,
			Name:         line.Product.Name,
			Description:  line.Product.Description,
			Price:        line.Product.Price,
			RegularPrice: line.Product.RegularPrice,
			Stock:        line.Product.Stock,
			Category:     line.Product.Category,
		},
		Shop: dto.Shop{
			ID:       line.Shop.ID,
			Name:     line.Shop.Name,
			Location: line.Shop.Location,
		},
		LineTotal: line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
	}
	if line.DeliveryDate != nil {
		out.DeliveryDate = line.DeliveryDate.Format(time.RFC3339)
	}

	return out
}

func toCartItem(item domain.CartItem) dto.CartLine {
	out := dto.CartLine{
		ID:        item.ID,
		ProductID: item.ProductID,
		ShopID:    item.ShopID,
		Quantity:  item.Quantity,
		Size:      item.Size,
	}
	if item.DeliveryDate != nil {
		out.DeliveryDate = item.DeliveryDate.Format(time.RFC3339)
	}

	return out
}

func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userIDHeader := r.Header.Get("User-ID")
	id, err := strconv.ParseInt(userIDHeader, 10, 64)
	if err != nil {
		logger.Log.Error("error while parsing user ID from header", logger.String("user_id", userIDHeader), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, false
	}

	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("error while encoding response to JSON", logger.Error(err))
	}
}
