package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/emreacar/nurseshift/pkg/core/model"
	"github.com/emreacar/nurseshift/pkg/core/services"
)

type createLeaveRequest struct {
	NurseID   string `json:"nurseId" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=annual excuse sick preference"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

func (h *Handler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	var req createLeaveRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	leave, err := services.AddLeave(r.Context(), h.store, h.logger,
		req.NurseID, model.LeaveType(req.Type), req.StartDate, req.EndDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.successResponse(w, r, "leave created", leave)
}

func (h *Handler) GetLeaves(w http.ResponseWriter, r *http.Request) {
	leaves, err := services.ListLeaves(r.Context(), h.store)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "", leaves)
}

func (h *Handler) GetLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	leave, err := services.GetLeave(r.Context(), h.store, id)
	if err != nil {
		if errors.Is(err, services.ErrLeaveNotFound) {
			h.notFound(w, r, err.Error())
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "", leave)
}

type updateLeaveRequest struct {
	Type      string `json:"type" validate:"required,oneof=annual excuse sick preference"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

func (h *Handler) UpdateLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateLeaveRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	leave, err := services.EditLeave(r.Context(), h.store, h.logger,
		id, model.LeaveType(req.Type), req.StartDate, req.EndDate)
	if err != nil {
		if errors.Is(err, services.ErrLeaveNotFound) {
			h.notFound(w, r, err.Error())
			return
		}
		h.badRequest(w, r, err)
		return
	}

	h.successResponse(w, r, "leave updated", leave)
}

func (h *Handler) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := services.RemoveLeave(r.Context(), h.store, h.logger, id); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "leave deleted", nil)
}
