package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/emreacar/nurseshift/pkg/core/model"
	"github.com/emreacar/nurseshift/pkg/core/scheduler"
	"github.com/emreacar/nurseshift/pkg/core/services"
)

type generateScheduleRequest struct {
	Month string `json:"month" validate:"required,datetime=2006-01"`
	Force bool   `json:"force"`
}

// generateScheduleResponse surfaces the run summary alongside the schedule
type generateScheduleResponse struct {
	Schedule        any      `json:"schedule"`
	Fairness        any      `json:"fairness"`
	ShiftCount      int      `json:"shiftCount"`
	AssignmentCount int      `json:"assignmentCount"`
	Warnings        []string `json:"warnings"`
}

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req generateScheduleRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := services.GenerateSchedule(r.Context(), h.store, h.config, h.logger, req.Month, req.Force)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrScheduleExists):
			h.conflict(w, r, err.Error())
		case errors.Is(err, scheduler.ErrNoResponsibleNurse),
			errors.Is(err, scheduler.ErrNotEnoughStaff):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "schedule generated", generateScheduleResponse{
		Schedule:        result.Schedule,
		Fairness:        result.Run.Fairness,
		ShiftCount:      result.Run.ShiftCount,
		AssignmentCount: result.Run.AssignmentCount,
		Warnings:        result.Run.Warnings,
	})
}

func (h *Handler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.store.GetSchedules(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "", schedules)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")

	detail, err := services.ViewSchedule(r.Context(), h.store, month)
	if err != nil {
		if errors.Is(err, services.ErrScheduleNotFound) {
			h.notFound(w, r, err.Error())
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "", detail)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteSchedule(r.Context(), id); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedule deleted", nil)
}

// monthlyStatsResponse pairs the per-nurse totals with the month's
// fairness score when a schedule exists
type monthlyStatsResponse struct {
	Month         string                    `json:"month"`
	FairnessScore *float64                  `json:"fairnessScore"`
	Nurses        []model.NurseMonthlyStats `json:"nurses"`
}

func (h *Handler) GetMonthlyStats(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")

	stats, err := services.MonthlyStats(r.Context(), h.store, month)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	resp := monthlyStatsResponse{Month: month, Nurses: stats}

	schedule, err := h.store.GetScheduleByMonth(r.Context(), month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if schedule != nil {
		resp.FairnessScore = schedule.FairnessScore
	}

	h.successResponse(w, r, "", resp)
}

func (h *Handler) GetNurseMonthlyStats(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")
	nurseID := chi.URLParam(r, "id")

	detail, err := services.NurseMonthlyDetail(r.Context(), h.store, month, nurseID)
	if err != nil {
		if errors.Is(err, services.ErrNurseNotFound) {
			h.notFound(w, r, err.Error())
			return
		}
		h.badRequest(w, r, err)
		return
	}

	h.successResponse(w, r, "", detail)
}
