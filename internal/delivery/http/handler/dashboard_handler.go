package handler

import (
	"net/http"

	"clinic-admin/internal/delivery/http/middleware"
	"clinic-admin/internal/usecase"
	"clinic-admin/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

func (h *DashboardHandler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboardUsecase.GetAdminDashboard(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load admin dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Admin dashboard retrieved successfully", view)
}

func (h *DashboardHandler) UserDashboard(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	view, err := h.dashboardUsecase.GetUserDashboard(r.Context(), identity)
	if err != nil {
		response.InternalServerError(w, "Failed to load dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", view)
}
