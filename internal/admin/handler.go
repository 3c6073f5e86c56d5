package admin

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/ppimu/project-monitoring/internal/transport"
	"github.com/ppimu/project-monitoring/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers()
	if err != nil {
		h.Logger.Error("ListUsers: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateUser: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prof, err := h.Service.CreateUser(dto)
	if err != nil {
		h.Logger.Error("CreateUser: service error", "error", err, "email", dto.Email)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateUser: user provisioned", "user_id", prof.ID)
	h.WriteJSON(w, http.StatusCreated, prof)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateUser: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prof, err := h.Service.UpdateUser(userID, dto)
	if err != nil {
		h.Logger.Error("UpdateUser: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, prof)
}

func (h *Handler) ListMDAs(w http.ResponseWriter, r *http.Request) {
	mdas, err := h.Service.ListMDAs()
	if err != nil {
		h.Logger.Error("ListMDAs: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, mdas)
}

func (h *Handler) CreateMDA(w http.ResponseWriter, r *http.Request) {
	var dto CreateMDADTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateMDA: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.CreateMDA(dto)
	if err != nil {
		h.Logger.Error("CreateMDA: service error", "error", err, "name", dto.Name)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateMDA: MDA registered", "mda_id", m.ID)
	h.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) UpdateMDA(w http.ResponseWriter, r *http.Request) {
	mdaID := chi.URLParam(r, "id")

	var dto UpdateMDADTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateMDA: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.UpdateMDA(mdaID, dto)
	if err != nil {
		h.Logger.Error("UpdateMDA: service error", "error", err, "mda_id", mdaID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, m)
}
