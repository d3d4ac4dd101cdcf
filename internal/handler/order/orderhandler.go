package orderhandler

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
)

type orderService interface {
	Checkout(userID int64) ([]domain.Order, error)
	Orders(userID int64) ([]domain.Order, error)
	Order(id, userID int64) (*domain.Order, error)
	Cancel(id, userID int64) (*domain.Order, error)
	SetStatus(id int64, status domain.OrderStatus) (*domain.Order, error)
}

type OrderHandler struct {
	srv orderService
}

func New(srv orderService) *OrderHandler {
	return &OrderHandler{
		srv: srv,
	}
}

// Checkout converts the caller's whole cart into orders behind a single
// wallet debit.
func (h OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	orders, err := h.srv.Checkout(userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyCart):
			http.Error(w, "cart is empty", http.StatusBadRequest)
		case errors.Is(err, domain.ErrInsufficientFunds):
			logger.Log.Warn("insufficient balance for checkout", logger.Int64("user_id", userID))
			http.Error(w, "insufficient wallet balance", http.StatusPaymentRequired)
		case errors.Is(err, domain.ErrInvalidOrderData):
			http.Error(w, "invalid order data", http.StatusBadRequest)
		default:
			logger.Log.Error("error during checkout", logger.Int64("user_id", userID), logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	dtos := make([]dto.Order, len(orders))
	for i, order := range orders {
		dtos[i] = toOrder(order)
	}

	writeJSON(w, http.StatusCreated, dtos)
}

func (h OrderHandler) Orders(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	orders, err := h.srv.Orders(userID)
	if err != nil {
		logger.Log.Error("error while fetching orders", logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	dtos := make([]dto.Order, len(orders))
	for i, order := range orders {
		dtos[i] = toOrder(order)
	}

	writeJSON(w, http.StatusOK, dtos)
}

func (h OrderHandler) Order(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	orderID, ok := orderID(w, r)
	if !ok {
		return
	}

	order, err := h.srv.Order(orderID, userID)
	if err != nil {
		h.writeOrderError(w, userID, orderID, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrder(*order))
}

func (h OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	orderID, ok := orderID(w, r)
	if !ok {
		return
	}

	order, err := h.srv.Cancel(orderID, userID)
	if err != nil {
		h.writeOrderError(w, userID, orderID, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrder(*order))
}

func (h OrderHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	orderID, ok := orderID(w, r)
	if !ok {
		return
	}

	var req dto.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("error while decoding a status update request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	order, err := h.srv.SetStatus(orderID, domain.OrderStatus(req.Status))
	if err != nil {
		h.writeOrderError(w, userID, orderID, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrder(*order))
}

func (h OrderHandler) writeOrderError(w http.ResponseWriter, userID, orderID int64, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		http.Error(w, "order not found: "+strconv.FormatInt(orderID, 10), http.StatusNotFound)
	case errors.Is(err, domain.ErrNotOwner):
		logger.Log.Warn("order belongs to another user", logger.Int64("order_id", orderID), logger.Int64("user_id", userID))
		http.Error(w, "order belongs to another user", http.StatusForbidden)
	case errors.Is(err, domain.ErrNotCancellable):
		http.Error(w, "only pending orders can be cancelled", http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidStatus):
		http.Error(w, "invalid status value", http.StatusBadRequest)
	default:
		logger.Log.Error("order operation failed", logger.Int64("order_id", orderID), logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func toOrder(order domain.Order) dto.Order {
	return dto.Order{
		ID:               order.ID,
		ProductID:        order.ProductID,
		ShopID:           order.ShopID,
		Quantity:         order.Quantity,
		Price:            order.Price,
		Size:             order.Size,
		Status:           string(order.Status),
		Paid:             order.Paid,
		DeliveryDate:     order.DeliveryDate.Format(time.RFC3339),
		ReturnExpiryDate: order.ReturnExpiryDate.Format(time.RFC3339),
		CreatedAt:        order.CreatedAt.Format(time.RFC3339),
	}
}

func orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return 0, false
	}

	return id, true
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
