package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/emreacar/nurseshift/pkg/core/model"
	"github.com/emreacar/nurseshift/pkg/core/services"
)

type createNurseRequest struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role" validate:"required,oneof=responsible staff"`
}

func (h *Handler) CreateNurse(w http.ResponseWriter, r *http.Request) {
	var req createNurseRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	nurse, err := services.AddNurse(r.Context(), h.store, h.logger, req.Name, model.NurseRole(req.Role))
	if err != nil {
		if errors.Is(err, services.ErrResponsibleExists) {
			h.conflict(w, r, err.Error())
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "nurse created", nurse)
}

func (h *Handler) GetNurses(w http.ResponseWriter, r *http.Request) {
	nurses, err := services.ListNurses(r.Context(), h.store)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "", nurses)
}

func (h *Handler) GetNurse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	nurse, err := services.GetNurse(r.Context(), h.store, id)
	if err != nil {
		if errors.Is(err, services.ErrNurseNotFound) {
			h.notFound(w, r, err.Error())
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "", nurse)
}

func (h *Handler) GetResponsibleNurse(w http.ResponseWriter, r *http.Request) {
	nurse, err := h.store.FindResponsibleNurse(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if nurse == nil {
		h.notFound(w, r, "no responsible nurse on the roster")
		return
	}

	h.successResponse(w, r, "", nurse)
}

func (h *Handler) GetStaffNurses(w http.ResponseWriter, r *http.Request) {
	nurses, err := h.store.FindStaffNurses(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "", nurses)
}

type updateNurseRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *Handler) UpdateNurse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateNurseRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	nurse, err := services.RenameNurse(r.Context(), h.store, h.logger, id, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrNurseNotFound) {
			h.notFound(w, r, err.Error())
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "nurse updated", nurse)
}

func (h *Handler) DeleteNurse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := services.RemoveNurse(r.Context(), h.store, h.logger, id); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "nurse deleted", nil)
}
