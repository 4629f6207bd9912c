package handlers

import (
	"net/http"

	"ecoshop/internal/models"
	"ecoshop/internal/repository"
	"ecoshop/pkg/logger"

	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	repo repository.OrderRepository
	log  *logger.Logger
}

func NewOrderHandler(repo repository.OrderRepository, log *logger.Logger) *OrderHandler {
	return &OrderHandler{repo: repo, log: log.WithComponent("order_handler")}
}

type OrderCreateRequest struct {
	UserID        int             `json:"usuario_id" validate:"required,gt=0"`
	Status        string          `json:"estado" validate:"omitempty,oneof=pending_payment processing shipped delivered cancelled"`
	ShippingAddr  string          `json:"direccion_envio" validate:"required"`
	PaymentMethod string          `json:"metodo_pago"`
	PaymentTxID   string          `json:"id_transaccion_pago"`
	TotalCarbonKg decimal.Decimal `json:"huella_carbono_total_kg"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req OrderCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	o := models.Order{
		UserID:        req.UserID,
		Status:        req.Status,
		ShippingAddr:  req.ShippingAddr,
		PaymentMethod: req.PaymentMethod,
		PaymentTxID:   req.PaymentTxID,
		TotalCarbonKg: req.TotalCarbonKg,
	}

	if err := h.repo.Create(r.Context(), &o); err != nil {
		writeRepoError(w, err)
		return
	}

	h.log.Info("order created", "pedido_id", o.OrderID, "usuario_id", o.UserID)
	writeJSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	order, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.repo.GetAll(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(w, r, "usuarioId")
	if !ok {
		return
	}

	orders, err := h.repo.GetByUserID(r.Context(), userID)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	status := r.URL.Query().Get("estado")
	if status == "" {
		writeError(w, http.StatusBadRequest, "Bad Request", "estado query parameter is required")
		return
	}

	order, err := h.repo.UpdateStatus(r.Context(), id, status)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	h.log.Info("order status updated", "pedido_id", id, "estado", status)
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}

	h.log.Info("order deleted", "pedido_id", id)
	writeJSON(w, http.StatusNoContent, nil)
}
