package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-clinic-backend/internal/delivery/http/handler"
	"go-clinic-backend/internal/delivery/http/middleware"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	patientHandler      *handler.PatientHandler
	doctorHandler       *handler.DoctorHandler
	appointmentHandler  *handler.AppointmentHandler
	consultationHandler *handler.ConsultationHandler
	referralHandler     *handler.ReferralHandler
	billingHandler      *handler.BillingHandler
	documentHandler     *handler.DocumentHandler
	broadcastHandler    *handler.BroadcastHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	timeoutMiddleware   *middleware.TimeoutMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	consultationHandler *handler.ConsultationHandler,
	referralHandler *handler.ReferralHandler,
	billingHandler *handler.BillingHandler,
	documentHandler *handler.DocumentHandler,
	broadcastHandler *handler.BroadcastHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	timeoutMiddleware *middleware.TimeoutMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		patientHandler:      patientHandler,
		doctorHandler:       doctorHandler,
		appointmentHandler:  appointmentHandler,
		consultationHandler: consultationHandler,
		referralHandler:     referralHandler,
		billingHandler:      billingHandler,
		documentHandler:     documentHandler,
		broadcastHandler:    broadcastHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		timeoutMiddleware:   timeoutMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check and metrics
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	r.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Clinical routes (any authenticated staff role)
	clinical := api.PathPrefix("").Subrouter()
	clinical.Use(r.authMiddleware.Authenticate)
	clinical.Use(middleware.RequireClinician)

	// Patients
	clinical.HandleFunc("/patients", r.patientHandler.List).Methods(http.MethodGet)
	clinical.HandleFunc("/patients/search", r.patientHandler.Search).Methods(http.MethodGet)
	clinical.HandleFunc("/patients", r.patientHandler.Create).Methods(http.MethodPost)
	clinical.HandleFunc("/patients/{id}", r.patientHandler.Get).Methods(http.MethodGet)
	clinical.HandleFunc("/patients/{id}", r.patientHandler.Update).Methods(http.MethodPut)
	clinical.HandleFunc("/patients/{id}/appointments", r.appointmentHandler.ListByPatient).Methods(http.MethodGet)
	clinical.HandleFunc("/patients/{id}/consultations", r.consultationHandler.PatientHistory).Methods(http.MethodGet)
	clinical.HandleFunc("/patients/{id}/referrals", r.referralHandler.ListByPatient).Methods(http.MethodGet)
	clinical.HandleFunc("/patients/{id}/invoices", r.billingHandler.ListPatientInvoices).Methods(http.MethodGet)

	// Doctors (read)
	clinical.HandleFunc("/doctors", r.doctorHandler.List).Methods(http.MethodGet)
	clinical.HandleFunc("/doctors/search", r.doctorHandler.Search).Methods(http.MethodGet)
	clinical.HandleFunc("/doctors/{id}", r.doctorHandler.Get).Methods(http.MethodGet)
	clinical.HandleFunc("/doctors/{id}/appointments", r.appointmentHandler.ListByDoctor).Methods(http.MethodGet)
	clinical.HandleFunc("/doctors/{id}/referrals", r.referralHandler.ListByDoctor).Methods(http.MethodGet)

	// Appointments
	clinical.HandleFunc("/appointments", r.appointmentHandler.List).Methods(http.MethodGet)
	clinical.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)
	clinical.HandleFunc("/appointments/{id}", r.appointmentHandler.Get).Methods(http.MethodGet)
	clinical.HandleFunc("/appointments/{id}", r.appointmentHandler.Update).Methods(http.MethodPut)
	clinical.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)

	// Billing (read + invoice creation)
	clinical.HandleFunc("/services", r.billingHandler.ListServices).Methods(http.MethodGet)
	clinical.HandleFunc("/services/search", r.billingHandler.SearchServices).Methods(http.MethodGet)
	clinical.HandleFunc("/services/{id}", r.billingHandler.GetService).Methods(http.MethodGet)
	clinical.HandleFunc("/invoices", r.billingHandler.ListInvoices).Methods(http.MethodGet)
	clinical.HandleFunc("/invoices", r.billingHandler.CreateInvoice).Methods(http.MethodPost)
	clinical.HandleFunc("/invoices/{id}", r.billingHandler.GetInvoice).Methods(http.MethodGet)
	clinical.HandleFunc("/invoices/{id}/status", r.billingHandler.TransitionInvoice).Methods(http.MethodPatch)

	// Broadcasts (read)
	clinical.HandleFunc("/broadcasts", r.broadcastHandler.List).Methods(http.MethodGet)
	clinical.HandleFunc("/broadcasts/{id}", r.broadcastHandler.Get).Methods(http.MethodGet)

	// Doctor routes (medical records and referrals)
	medical := api.PathPrefix("").Subrouter()
	medical.Use(r.authMiddleware.Authenticate)
	medical.Use(middleware.RequireAdminOrDoctor)

	medical.HandleFunc("/consultations", r.consultationHandler.List).Methods(http.MethodGet)
	medical.HandleFunc("/consultations", r.consultationHandler.Create).Methods(http.MethodPost)
	medical.HandleFunc("/consultations/{id}", r.consultationHandler.Get).Methods(http.MethodGet)
	medical.HandleFunc("/consultations/{id}", r.consultationHandler.Update).Methods(http.MethodPut)

	medical.HandleFunc("/referrals", r.referralHandler.Create).Methods(http.MethodPost)
	medical.HandleFunc("/referrals/{id}", r.referralHandler.Get).Methods(http.MethodGet)
	medical.HandleFunc("/referrals/{id}/status", r.referralHandler.Transition).Methods(http.MethodPatch)

	medical.HandleFunc("/documents/templates/{id}/render", r.documentHandler.Render).Methods(http.MethodPost)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/users", r.authHandler.Register).Methods(http.MethodPost)

	admin.HandleFunc("/doctors", r.doctorHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/patients/{id}", r.patientHandler.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/services", r.billingHandler.CreateService).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id}", r.billingHandler.UpdateService).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}", r.billingHandler.DeleteService).Methods(http.MethodDelete)

	admin.HandleFunc("/documents/templates", r.documentHandler.ListTemplates).Methods(http.MethodGet)
	admin.HandleFunc("/documents/templates", r.documentHandler.CreateTemplate).Methods(http.MethodPost)
	admin.HandleFunc("/documents/templates/{id}", r.documentHandler.GetTemplate).Methods(http.MethodGet)
	admin.HandleFunc("/documents/templates/{id}", r.documentHandler.UpdateTemplate).Methods(http.MethodPut)
	admin.HandleFunc("/documents/templates/{id}", r.documentHandler.DeleteTemplate).Methods(http.MethodDelete)

	admin.HandleFunc("/broadcasts", r.broadcastHandler.Send).Methods(http.MethodPost)

	admin.HandleFunc("/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)

	// Add CORS and request-deadline middleware
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.timeoutMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
