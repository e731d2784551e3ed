package http

import (
	"net/http"

	"clinic-admin/config"
	"clinic-admin/internal/delivery/http/handler"
	"clinic-admin/internal/delivery/http/middleware"

	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"
)

type Router struct {
	router           *mux.Router
	rateLimit        config.RateLimitConfig
	doctorHandler    *handler.DoctorHandler
	auditLogHandler  *handler.AuditLogHandler
	dashboardHandler *handler.DashboardHandler
	authMiddleware   *middleware.AuthMiddleware
	adminGate        *middleware.AdminGate
	corsMiddleware   *middleware.CORSMiddleware
}

func NewRouter(
	rateLimit config.RateLimitConfig,
	doctorHandler *handler.DoctorHandler,
	auditLogHandler *handler.AuditLogHandler,
	dashboardHandler *handler.DashboardHandler,
	authMiddleware *middleware.AuthMiddleware,
	adminGate *middleware.AdminGate,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:           mux.NewRouter(),
		rateLimit:        rateLimit,
		doctorHandler:    doctorHandler,
		auditLogHandler:  auditLogHandler,
		dashboardHandler: dashboardHandler,
		authMiddleware:   authMiddleware,
		adminGate:        adminGate,
		corsMiddleware:   corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Use(r.corsMiddleware.Handle)
	if r.rateLimit.Requests > 0 {
		r.router.Use(httprate.LimitByIP(r.rateLimit.Requests, r.rateLimit.Window))
	}
	r.router.Use(r.authMiddleware.Identify)

	// Pages
	r.router.Handle("/admin", r.adminGate.Handle(http.HandlerFunc(r.dashboardHandler.AdminDashboard))).Methods(http.MethodGet)
	r.router.HandleFunc("/dashboard", r.dashboardHandler.UserDashboard).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Doctor directory (signed-in users)
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.RequireIdentity)
	doctors.HandleFunc("/available", r.doctorHandler.GetAvailableDoctors).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.adminGate.Handle)

	// Doctor management (admin)
	admin.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
