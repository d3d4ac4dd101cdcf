package returnhandler

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

type returnService interface {
	Request(orderID, userID int64, reason string) (*domain.Return, error)
	Returns(userID int64) ([]domain.Return, error)
	Resolve(id int64, approve bool) (*domain.Return, error)
}

type ReturnHandler struct {
	srv returnService
}

func New(srv returnService) *ReturnHandler {
	return &ReturnHandler{
		srv: srv,
	}
}

func (h ReturnHandler) Request(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	var req dto.RequestReturn
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("error while decoding a return request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := req.IsValid(); err != nil {
		logger.Log.Warn("invalid return fields", logger.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ret, err := h.srv.Request(req.OrderID, userID, req.Reason)
	if err != nil {
		h.writeReturnError(w, userID, req.OrderID, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReturn(*ret))
}

func (h ReturnHandler) Returns(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	returns, err := h.srv.Returns(userID)
	if err != nil {
		logger.Log.Error("error while fetching returns", logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if len(returns) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	dtos := make([]dto.Return, len(returns))
	for i, ret := range returns {
		dtos[i] = toReturn(ret)
	}

	writeJSON(w, http.StatusOK, dtos)
}

func (h ReturnHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	returnID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var req dto.ResolveReturn
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("error while decoding a return resolution request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	ret, err := h.srv.Resolve(returnID, req.Approve)
	if err != nil {
		h.writeReturnError(w, userID, returnID, err)
		return
	}

	writeJSON(w, http.StatusOK, toReturn(*ret))
}

func (h ReturnHandler) writeReturnError(w http.ResponseWriter, userID, id int64, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		http.Error(w, "order not found: "+strconv.FormatInt(id, 10), http.StatusNotFound)
	case errors.Is(err, domain.ErrReturnNotFound):
		http.Error(w, "return not found: "+strconv.FormatInt(id, 10), http.StatusNotFound)
	case errors.Is(err, domain.ErrNotOwner):
		logger.Log.Warn("order belongs to another user", logger.Int64("id", id), logger.Int64("user_id", userID))
		http.Error(w, "order belongs to another user", http.StatusForbidden)
	case errors.Is(err, domain.ErrReturnNotEligible):
		http.Error(w, "only delivered orders can be returned", http.StatusConflict)
	case errors.Is(err, domain.ErrReturnWindowExpired):
		http.Error(w, "return period has expired", http.StatusConflict)
	case errors.Is(err, domain.ErrReturnExists):
		http.Error(w, "return already requested for this order", http.StatusConflict)
	case errors.Is(err, domain.ErrReturnResolved):
		http.Error(w, "return already resolved", http.StatusConflict)
	default:
		logger.Log.Error("return operation failed", logger.Int64("id", id), logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func toReturn(ret domain.Return) dto.Return {
	return dto.Return{
		ID:           ret.ID,
		OrderID:      ret.OrderID,
		Reason:       ret.Reason,
		Status:       string(ret.Status),
		RefundAmount: ret.RefundAmount,
		CreatedAt:    ret.CreatedAt.Format(time.RFC3339),
	}
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
