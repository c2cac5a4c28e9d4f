package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/emreacar/nurseshift/pkg/core/services"
)

func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	shifts, err := services.ListShifts(r.Context(), h.store, month)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.successResponse(w, r, "", shifts)
}

type assignShiftRequest struct {
	NurseID string `json:"nurseId" validate:"required"`
}

func (h *Handler) AssignShift(w http.ResponseWriter, r *http.Request) {
	shiftID := chi.URLParam(r, "id")

	var req assignShiftRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	assignment, err := services.AssignNurseToShift(r.Context(), h.store, h.logger, shiftID, req.NurseID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrShiftNotFound),
			errors.Is(err, services.ErrNurseNotFound):
			h.notFound(w, r, err.Error())
		case errors.Is(err, services.ErrNurseOnLeave),
			errors.Is(err, services.ErrNurseAlreadyBooked):
			h.conflict(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "nurse assigned", assignment)
}

func (h *Handler) UnassignShift(w http.ResponseWriter, r *http.Request) {
	shiftID := chi.URLParam(r, "id")
	nurseID := chi.URLParam(r, "nurseId")

	if err := services.UnassignNurseFromShift(r.Context(), h.store, h.logger, shiftID, nurseID); err != nil {
		if errors.Is(err, services.ErrAssignmentNotFound) {
			h.notFound(w, r, err.Error())
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "nurse unassigned", nil)
}
