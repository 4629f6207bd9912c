package handlers

import (
	"net/http"

	"ecoshop/internal/models"
	"ecoshop/internal/repository"
	"ecoshop/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type CertificationHandler struct {
	repo repository.CertificationRepository
	log  *logger.Logger
}

func NewCertificationHandler(repo repository.CertificationRepository, log *logger.Logger) *CertificationHandler {
	return &CertificationHandler{repo: repo, log: log.WithComponent("certification_handler")}
}

type CertificationRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Code    string `json:"code" validate:"required,max=50"`
	Type    string `json:"type" validate:"max=50"`
	LogoURL string `json:"logo_url" validate:"max=500"`
}

func (h *CertificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CertificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	c := models.Certification{
		Name:    req.Name,
		Code:    req.Code,
		Type:    req.Type,
		LogoURL: req.LogoURL,
	}

	if err := h.repo.Create(r.Context(), &c); err != nil {
		writeRepoError(w, err)
		return
	}

	h.log.Info("certification created", "code", c.Code)
	writeJSON(w, http.StatusCreated, c)
}

func (h *CertificationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	cert, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cert)
}

func (h *CertificationHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "Bad Request", "code is required")
		return
	}

	cert, err := h.repo.GetByCode(r.Context(), code)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cert)
}

func (h *CertificationHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	certs, err := h.repo.GetAll(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, certs)
}

func (h *CertificationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req CertificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	c := models.Certification{
		CertificationID: id,
		Name:            req.Name,
		Code:            req.Code,
		Type:            req.Type,
		LogoURL:         req.LogoURL,
	}

	if err := h.repo.Update(r.Context(), &c); err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *CertificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}

	h.log.Info("certification deleted", "certification_id", id)
	writeJSON(w, http.StatusNoContent, nil)
}
