package handlers

import (
	"net/http"

	"ecoshop/internal/models"
	"ecoshop/internal/repository"
	"ecoshop/pkg/logger"
)

type BrandHandler struct {
	repo repository.BrandRepository
	log  *logger.Logger
}

func NewBrandHandler(repo repository.BrandRepository, log *logger.Logger) *BrandHandler {
	return &BrandHandler{repo: repo, log: log.WithComponent("brand_handler")}
}

type BrandCreateRequest struct {
	UserID       int    `json:"usuario_id" validate:"required,gt=0"`
	OfficialName string `json:"nombre_oficial" validate:"required,max=150"`
	Description  string `json:"descripcion_sostenible"`
	Website      string `json:"sitio_web"`
	LogoURL      string `json:"logo_url"`
}

type BrandUpdateRequest struct {
	OfficialName string `json:"nombre_oficial" validate:"required,max=150"`
	Description  string `json:"descripcion_sostenible"`
	Website      string `json:"sitio_web"`
	LogoURL      string `json:"logo_url"`
}

func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BrandCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	b := models.Brand{
		UserID:       req.UserID,
		OfficialName: req.OfficialName,
		Description:  req.Description,
		Website:      req.Website,
		LogoURL:      req.LogoURL,
	}

	if err := h.repo.Create(r.Context(), &b); err != nil {
		writeRepoError(w, err)
		return
	}

	h.log.Info("brand created", "marca_id", b.BrandID)
	writeJSON(w, http.StatusCreated, b)
}

func (h *BrandHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	brand, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, brand)
}

func (h *BrandHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	brands, err := h.repo.GetAll(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, brands)
}

func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req BrandUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	b := models.Brand{
		BrandID:      id,
		OfficialName: req.OfficialName,
		Description:  req.Description,
		Website:      req.Website,
		LogoURL:      req.LogoURL,
	}

	if err := h.repo.Update(r.Context(), &b); err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, b)
}

func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}

	h.log.Info("brand deleted", "marca_id", id)
	writeJSON(w, http.StatusNoContent, nil)
}
