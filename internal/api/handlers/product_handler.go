package handlers

import (
	"net/http"

	"ecoshop/internal/models"
	"ecoshop/internal/repository"
	"ecoshop/pkg/logger"

	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	repo repository.ProductRepository
	log  *logger.Logger
}

func NewProductHandler(repo repository.ProductRepository, log *logger.Logger) *ProductHandler {
	return &ProductHandler{repo: repo, log: log.WithComponent("product_handler")}
}

type ProductRequest struct {
	BrandID        int             `json:"marca_id" validate:"required,gt=0"`
	Name           string          `json:"nombre" validate:"required,max=200"`
	Description    string          `json:"descripcion"`
	Price          decimal.Decimal `json:"precio"`
	Stock          int             `json:"stock" validate:"min=0"`
	Sku            *string         `json:"sku"`
	Materials      string          `json:"materiales"`
	Origin         string          `json:"origen"`
	CarbonKg       decimal.Decimal `json:"huella_carbono_kg"`
	RecyclablePct  int             `json:"porcentaje_reciclable" validate:"min=0,max=100"`
	EcoBadge       string          `json:"eco_badge" validate:"omitempty,oneof=low medium neutral"`
	ImageURL       string          `json:"imagen_url"`
	Active         *bool           `json:"activo"`
	Certifications []string        `json:"certificaciones"`
}

func (req *ProductRequest) toModel() models.Product {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return models.Product{
		BrandID:       req.BrandID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Stock:         req.Stock,
		Sku:           req.Sku,
		Materials:     req.Materials,
		Origin:        req.Origin,
		CarbonKg:      req.CarbonKg,
		RecyclablePct: req.RecyclablePct,
		EcoBadge:      req.EcoBadge,
		ImageURL:      req.ImageURL,
		Active:        active,
	}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}
	if !req.Price.IsPositive() {
		writeValidationError(w, map[string]string{"precio": "must be greater than 0"})
		return
	}

	p := req.toModel()
	if err := h.repo.Create(r.Context(), &p, req.Certifications); err != nil {
		writeRepoError(w, err)
		return
	}

	h.log.Info("product created", "producto_id", p.ProductID)
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	product, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.GetAll(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}
	if !req.Price.IsPositive() {
		writeValidationError(w, map[string]string{"precio": "must be greater than 0"})
		return
	}

	p := req.toModel()
	p.ProductID = id

	if err := h.repo.Update(r.Context(), &p, req.Certifications); err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}

	h.log.Info("product deleted", "producto_id", id)
	writeJSON(w, http.StatusNoContent, nil)
}
