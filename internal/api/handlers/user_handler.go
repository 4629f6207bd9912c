package handlers

import (
	"net/http"

	"ecoshop/internal/models"
	"ecoshop/internal/repository"
	"ecoshop/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

type UserHandler struct {
	repo       repository.UserRepository
	bcryptCost int
	log        *logger.Logger
}

func NewUserHandler(repo repository.UserRepository, bcryptCost int, log *logger.Logger) *UserHandler {
	return &UserHandler{repo: repo, bcryptCost: bcryptCost, log: log.WithComponent("user_handler")}
}

type UserCreateRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	Name           string `json:"nombre"`
	DefaultAddress string `json:"direccion_default"`
	Role           string `json:"rol" validate:"required,oneof=customer brand admin"`
}

type UserUpdateRequest struct {
	Name           string `json:"nombre"`
	DefaultAddress string `json:"direccion_default"`
	Role           string `json:"rol" validate:"required,oneof=customer brand admin"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req UserCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		h.log.Error("failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "an unexpected error occurred")
		return
	}

	u := models.User{
		Email:          req.Email,
		PasswordHash:   string(hash),
		Name:           req.Name,
		DefaultAddress: req.DefaultAddress,
		Role:           req.Role,
	}

	if err := h.repo.Create(r.Context(), &u); err != nil {
		writeRepoError(w, err)
		return
	}

	h.log.Info("user created", "usuario_id", u.UserID)
	writeJSON(w, http.StatusCreated, u)
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	user, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.repo.GetAll(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req UserUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	u := models.User{
		UserID:         id,
		Name:           req.Name,
		DefaultAddress: req.DefaultAddress,
		Role:           req.Role,
	}

	if err := h.repo.Update(r.Context(), &u); err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}

	h.log.Info("user deleted", "usuario_id", id)
	writeJSON(w, http.StatusNoContent, nil)
}
