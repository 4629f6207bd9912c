package handlers

import (
	"net/http"
	"strconv"

	"ecoshop/internal/repository"
	"ecoshop/pkg/logger"
)

type OrderItemHandler struct {
	repo repository.OrderItemRepository
	log  *logger.Logger
}

func NewOrderItemHandler(repo repository.OrderItemRepository, log *logger.Logger) *OrderItemHandler {
	return &OrderItemHandler{repo: repo, log: log.WithComponent("order_item_handler")}
}

type OrderItemCreateRequest struct {
	OrderID   int `json:"pedido_id" validate:"required,gt=0"`
	ProductID int `json:"producto_id" validate:"required,gt=0"`
	Quantity  int `json:"cantidad" validate:"required,min=1"`
}

func (h *OrderItemHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req OrderItemCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	item, err := h.repo.Add(r.Context(), req.OrderID, req.ProductID, req.Quantity)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	h.log.Info("order item added", "pedido_id", req.OrderID, "producto_id", req.ProductID, "cantidad", req.Quantity)
	writeJSON(w, http.StatusCreated, item)
}

func (h *OrderItemHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, ok := idParam(w, r, "itemId")
	if !ok {
		return
	}

	quantity, err := strconv.Atoi(r.URL.Query().Get("cantidad"))
	if err != nil || quantity < 1 {
		writeError(w, http.StatusBadRequest, "Bad Request", "cantidad must be a number of at least 1")
		return
	}

	item, err := h.repo.UpdateQuantity(r.Context(), itemID, quantity)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	h.log.Info("order item quantity updated", "pedido_item_id", itemID, "cantidad", quantity)
	writeJSON(w, http.StatusOK, item)
}

func (h *OrderItemHandler) Remove(w http.ResponseWriter, r *http.Request) {
	itemID, ok := idParam(w, r, "itemId")
	if !ok {
		return
	}

	if err := h.repo.Remove(r.Context(), itemID); err != nil {
		writeRepoError(w, err)
		return
	}

	h.log.Info("order item removed", "pedido_item_id", itemID)
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *OrderItemHandler) GetByOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := idParam(w, r, "pedidoId")
	if !ok {
		return
	}

	items, err := h.repo.GetByOrderID(r.Context(), orderID)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}
