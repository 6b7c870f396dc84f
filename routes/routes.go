package routes

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/satya-aforv/finance-tracker-sub001/controllers"
	"github.com/satya-aforv/finance-tracker-sub001/middleware"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func optionsHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func InitRouter() *mux.Router {
	r := mux.NewRouter()

	// Health check endpoint for Docker health checks (root level)
	r.Handle("/health", http.HandlerFunc(healthHandler)).Methods(http.MethodGet)

	// CORS - origins from CORS_ALLOWED_ORIGINS (comma-separated) or local defaults
	origins := []string{
		"http://localhost:3000", "http://localhost:5173",
		"http://127.0.0.1:3000", "http://127.0.0.1:5173",
	}
	if originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS"); originsEnv != "" {
		for _, p := range strings.Split(originsEnv, ",") {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
	}
	r.Use(func(next http.Handler) http.Handler {
		return handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-CRON-KEY", "X-Requested-With", "X-Request-ID"}),
			handlers.AllowCredentials(),
		)(next)
	})

	api := r.PathPrefix("").Subrouter()

	// Catch-all OPTIONS handler for CORS preflight
	api.PathPrefix("/").HandlerFunc(optionsHandler).Methods(http.MethodOptions)

	// Login is rate limited per IP; everything else sits behind JWT auth.
	loginLimiter := middleware.NewIPRateLimiter(10, time.Minute)
	api.Handle("/admin/login", loginLimiter.Middleware(http.HandlerFunc(controllers.Login))).Methods(http.MethodPost)

	// Cron endpoint (protected via X-CRON-KEY header)
	cronLimiter := middleware.NewIPRateLimiter(1000, time.Hour)
	api.Handle("/cron/overdue", cronLimiter.Middleware(http.HandlerFunc(controllers.MarkOverdueCronHandler))).Methods(http.MethodPost)

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminAuthMiddleware)

	// Plans
	admin.Handle("/plans", http.HandlerFunc(controllers.ListPlansHandler)).Methods(http.MethodGet)
	admin.Handle("/plans", http.HandlerFunc(controllers.CreatePlanHandler)).Methods(http.MethodPost)
	admin.Handle("/plans/active", http.HandlerFunc(controllers.ListActivePlansHandler)).Methods(http.MethodGet)
	admin.Handle("/plans/{id:[0-9]+}", http.HandlerFunc(controllers.GetPlanHandler)).Methods(http.MethodGet)
	admin.Handle("/plans/{id:[0-9]+}", http.HandlerFunc(controllers.UpdatePlanHandler)).Methods(http.MethodPut)
	admin.Handle("/plans/{id:[0-9]+}", http.HandlerFunc(controllers.DeletePlanHandler)).Methods(http.MethodDelete)
	admin.Handle("/plans/{id:[0-9]+}/calculate", http.HandlerFunc(controllers.CalculatePlanReturnsHandler)).Methods(http.MethodPost)

	// Investors
	admin.Handle("/investors", http.HandlerFunc(controllers.ListInvestorsHandler)).Methods(http.MethodGet)
	admin.Handle("/investors", http.HandlerFunc(controllers.CreateInvestorHandler)).Methods(http.MethodPost)
	admin.Handle("/investors/{id:[0-9]+}", http.HandlerFunc(controllers.GetInvestorHandler)).Methods(http.MethodGet)
	admin.Handle("/investors/{id:[0-9]+}", http.HandlerFunc(controllers.UpdateInvestorHandler)).Methods(http.MethodPut)

	// Investments
	admin.Handle("/investments", http.HandlerFunc(controllers.ListInvestmentsHandler)).Methods(http.MethodGet)
	admin.Handle("/investments", http.HandlerFunc(controllers.CreateInvestmentHandler)).Methods(http.MethodPost)
	admin.Handle("/investments/calculate", http.HandlerFunc(controllers.CalculateInvestmentHandler)).Methods(http.MethodPost)
	admin.Handle("/investments/{id:[0-9]+}", http.HandlerFunc(controllers.GetInvestmentHandler)).Methods(http.MethodGet)
	admin.Handle("/investments/{id:[0-9]+}", http.HandlerFunc(controllers.UpdateInvestmentHandler)).Methods(http.MethodPut)

	// Schedule and payments
	admin.Handle("/investments/{id:[0-9]+}/schedule", http.HandlerFunc(controllers.GetScheduleHandler)).Methods(http.MethodGet)
	admin.Handle("/investments/{id:[0-9]+}/schedule/{month:[0-9]+}/payment", http.HandlerFunc(controllers.RecordPaymentHandler)).Methods(http.MethodPut)

	// Documents
	admin.Handle("/investments/{id:[0-9]+}/documents", http.HandlerFunc(controllers.ListDocumentsHandler)).Methods(http.MethodGet)
	admin.Handle("/investments/{id:[0-9]+}/documents", http.HandlerFunc(controllers.UploadDocumentsHandler)).Methods(http.MethodPost)
	admin.Handle("/investments/{id:[0-9]+}/documents/{docId:[0-9]+}", http.HandlerFunc(controllers.DeleteDocumentHandler)).Methods(http.MethodDelete)

	// Timeline
	admin.Handle("/investments/{id:[0-9]+}/timeline", http.HandlerFunc(controllers.ListTimelineHandler)).Methods(http.MethodGet)
	admin.Handle("/investments/{id:[0-9]+}/timeline", http.HandlerFunc(controllers.AddTimelineNoteHandler)).Methods(http.MethodPost)

	// Remarks
	admin.Handle("/investments/{id:[0-9]+}/remarks", http.HandlerFunc(controllers.ListRemarksHandler)).Methods(http.MethodGet)
	admin.Handle("/investments/{id:[0-9]+}/remarks", http.HandlerFunc(controllers.AddRemarkHandler)).Methods(http.MethodPost)

	// Dashboard
	admin.Handle("/dashboard", http.HandlerFunc(controllers.DashboardStatsHandler)).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "finance-tracker-api",
	})
}
