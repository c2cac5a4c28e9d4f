package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/emreacar/nurseshift/internal/config"
	"github.com/emreacar/nurseshift/pkg/core/model"
	"github.com/emreacar/nurseshift/pkg/core/services"
)

// Store bundles every database capability the HTTP API needs. *postgres.DB
// satisfies it.
type Store interface {
	services.NurseStore
	services.LeaveStore
	services.GenerateScheduleStore
	services.ViewScheduleStore
	services.NurseStatsStore
	services.ShiftStore

	GetSchedules(ctx context.Context) ([]model.Schedule, error)
}

type Handler struct {
	validate *validator.Validate
	config   *config.Config
	store    Store
	logger   *zap.Logger

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, store Store, logger *zap.Logger) *Handler {
	return &Handler{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		config:   cfg,
		store:    store,
		logger:   logger,

		Mux: chi.NewRouter(),
	}
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestLogger)
	h.Mux.Use(middleware.Recoverer)

	h.Mux.Route("/api", func(api chi.Router) {
		api.Route("/nurses", func(r chi.Router) {
			r.Post("/", h.CreateNurse)
			r.Get("/", h.GetNurses)
			r.Get("/responsible", h.GetResponsibleNurse)
			r.Get("/staff", h.GetStaffNurses)
			r.Get("/{id}", h.GetNurse)
			r.Put("/{id}", h.UpdateNurse)
			r.Delete("/{id}", h.DeleteNurse)
		})

		api.Route("/leaves", func(r chi.Router) {
			r.Post("/", h.CreateLeave)
			r.Get("/", h.GetLeaves)
			r.Get("/{id}", h.GetLeave)
			r.Put("/{id}", h.UpdateLeave)
			r.Delete("/{id}", h.DeleteLeave)
		})

		api.Route("/schedules", func(r chi.Router) {
			r.Post("/generate", h.GenerateSchedule)
			r.Get("/", h.GetSchedules)
			r.Get("/{month}", h.GetSchedule)
			r.Delete("/{id}", h.DeleteSchedule)
		})

		api.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.GetShifts)
			r.Post("/{id}/assign", h.AssignShift)
			r.Delete("/{id}/assign/{nurseId}", h.UnassignShift)
		})

		api.Get("/stats/{month}", h.GetMonthlyStats)
		api.Get("/stats/{month}/nurses/{id}", h.GetNurseMonthlyStats)
	})
}
