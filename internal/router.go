package internal

import (
	"context"
	"net/http"
	"strings"

	"github.com/fitcoach/backend/internal/admin"
	"github.com/fitcoach/backend/internal/auth"
	"github.com/fitcoach/backend/internal/coaching"
	"github.com/fitcoach/backend/internal/fatsecret"
	"github.com/fitcoach/backend/internal/middleware"
	"github.com/fitcoach/backend/internal/telegram"
	"github.com/fitcoach/backend/internal/telemetry/metrics"
	"github.com/fitcoach/backend/internal/trainers"
	"github.com/fitcoach/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

type Handlers struct {
	Auth      *auth.Handler
	Coaching  *coaching.Handler
	Trainer   *coaching.TrainerHandler
	Trainers  *trainers.Handler
	Admin     *admin.Handler
	FatSecret *fatsecret.Handler
	Webhook   *telegram.WebhookHandler
}

// RateLimits are request budgets per client IP per middleware.RateLimitWindow.
type RateLimits struct {
	API          int
	TelegramAuth int
	AdminLogin   int
	TrainerApply int
}

type RouterParams struct {
	Handlers       Handlers
	AuthMiddleware *middleware.AuthMiddlewareHandler
	RateLimiter    middleware.RequestRateLimiter
	RateLimits     RateLimits
	AllowedOrigins []string
	FrontendURL    string
	MetricsManager *metrics.Manager
	// HealthCheck reports backing store problems, nil means always healthy
	HealthCheck func(ctx context.Context) error
}

func NewRouter(params RouterParams) http.Handler {
	h := params.Handlers
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))
	r.Use(middleware.RequestMetrics(params.MetricsManager))
	r.Use(middleware.DrainAndCloseRequest())

	limit := func(name string, max int, code string) mux.MiddlewareFunc {
		return middleware.RateLimit(params.RateLimiter, middleware.NewRateLimitRule(name, max, code), params.MetricsManager)
	}
	limited := func(mw mux.MiddlewareFunc, handler http.HandlerFunc) http.Handler {
		return mw(handler)
	}
	adminOnly := middleware.RequireRole(string(coaching.RoleAdmin), "admin_only")

	r.HandleFunc("/health", healthHandler(params.HealthCheck)).Methods(http.MethodGet).Name("health")
	r.HandleFunc("/webhook", h.Webhook.HandleWebhook).Methods(http.MethodPost).Name("telegram-webhook")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(limit("api", params.RateLimits.API, middleware.ErrCodeTooManyRequests))

	// public auth endpoints
	api.Handle("/auth/telegram-init", limited(
		limit("telegram_auth", params.RateLimits.TelegramAuth, middleware.ErrCodeTooManyRequests),
		h.Auth.HandleTelegramInit,
	)).Methods(http.MethodPost)
	api.Handle("/auth/admin/login", limited(
		limit("admin_login", params.RateLimits.AdminLogin, middleware.ErrCodeTooManyAttempts),
		h.Auth.HandleAdminLogin,
	)).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(params.AuthMiddleware.AuthCheck())

	authed.Handle("/auth/admin/register", limited(adminOnly, h.Auth.HandleRegisterAdmin)).Methods(http.MethodPost)
	authed.HandleFunc("/auth/logout", h.Auth.HandleLogout).Methods(http.MethodPost)

	// own data
	authed.HandleFunc("/me", h.Coaching.HandleMe).Methods(http.MethodGet)
	authed.HandleFunc("/me/dashboard", h.Coaching.HandleDashboard).Methods(http.MethodGet)
	authed.HandleFunc("/me/next-workout", h.Coaching.HandleNextWorkout).Methods(http.MethodGet)
	authed.HandleFunc("/me/workouts", h.Coaching.HandleWorkouts).Methods(http.MethodGet)
	authed.HandleFunc("/me/workout-plan", h.Coaching.HandleGetWorkoutPlan).Methods(http.MethodGet)
	authed.HandleFunc("/me/workout-plan", h.Coaching.HandleUpsertWorkoutPlan).Methods(http.MethodPost)
	authed.HandleFunc("/me/goal-weight", h.Coaching.HandleGoalWeight).Methods(http.MethodPost)
	authed.HandleFunc("/me/trainer-profile", h.Trainers.HandleGetProfile).Methods(http.MethodGet)
	authed.Handle("/me/trainer-profile", limited(
		limit("trainer_apply", params.RateLimits.TrainerApply, middleware.ErrCodeTooManyRequests),
		h.Trainers.HandleApply,
	)).Methods(http.MethodPost)
	authed.HandleFunc("/tracking", h.Coaching.HandleTrackingHistory).Methods(http.MethodGet)
	authed.HandleFunc("/tracking", h.Coaching.HandleAddTracking).Methods(http.MethodPost)
	authed.HandleFunc("/nutrition", h.Coaching.HandleNutrition).Methods(http.MethodPost)
	authed.HandleFunc("/attendance", h.Coaching.HandleAttendance).Methods(http.MethodPost)

	// trainer catalogue
	authed.HandleFunc("/trainers", h.Trainers.HandleList).Methods(http.MethodGet)
	authed.HandleFunc("/trainers/{id:[0-9]+}", h.Trainers.HandleGet).Methods(http.MethodGet)

	// food lookup
	authed.HandleFunc("/fatsecret/autocomplete", h.FatSecret.HandleAutocomplete).Methods(http.MethodGet)
	authed.HandleFunc("/fatsecret/search", h.FatSecret.HandleSearch).Methods(http.MethodGet)
	authed.HandleFunc("/fatsecret/food/{id}", h.FatSecret.HandleFood).Methods(http.MethodGet)

	trainer := authed.PathPrefix("/trainer").Subrouter()
	trainer.Use(middleware.RequireRole(string(coaching.RoleTrainer), "trainer_only"))
	trainer.HandleFunc("/home", h.Trainer.HandleHome).Methods(http.MethodGet)
	trainer.HandleFunc("/clients", h.Trainer.HandleClients).Methods(http.MethodGet)
	trainer.HandleFunc("/clients/{id}", h.Trainer.HandleClientProfile).Methods(http.MethodGet)
	trainer.HandleFunc("/clients/{id}/nutrition-target", h.Trainer.HandleSetTargets).Methods(http.MethodPost)
	trainer.HandleFunc("/clients/{id}/nutrition-entry", h.Trainer.HandleAddNutrition).Methods(http.MethodPost)
	trainer.HandleFunc("/clients/{id}/workout-plan/bulk", h.Trainer.HandleBulkPlan).Methods(http.MethodPost)
	trainer.HandleFunc("/clients/{id}/attendance", h.Trainer.HandleMarkAttendance).Methods(http.MethodPost)
	trainer.HandleFunc("/monitoring", h.Trainer.HandleMonitoring).Methods(http.MethodGet)

	adminRouter := authed.PathPrefix("/admin").Subrouter()
	adminRouter.Use(adminOnly)
	adminRouter.HandleFunc("/stats", h.Admin.HandleStats).Methods(http.MethodGet)
	adminRouter.HandleFunc("/users", h.Admin.HandleUsers).Methods(http.MethodGet)
	adminRouter.HandleFunc("/users/{id}", h.Admin.HandleUser).Methods(http.MethodGet)
	adminRouter.HandleFunc("/users/{id}/role", h.Admin.HandleUpdateRole).Methods(http.MethodPatch)
	adminRouter.HandleFunc("/users/{id}", h.Admin.HandleDeleteUser).Methods(http.MethodDelete)
	adminRouter.HandleFunc("/trainers/pending", h.Admin.HandlePendingTrainers).Methods(http.MethodGet)
	adminRouter.HandleFunc("/trainers/{id}/approve", h.Admin.HandleReviewTrainer).Methods(http.MethodPost)
	adminRouter.HandleFunc("/audit-logs", h.Admin.HandleAuditLogs).Methods(http.MethodGet)

	r.NotFoundHandler = notFoundHandler(params.FrontendURL)

	var handler http.Handler = r
	handler = middleware.Cors(params.AllowedOrigins)(handler)
	handler = middleware.LogRequest()(handler)
	handler = middleware.RequestID()(handler)
	handler = middleware.PanicRecovery(params.MetricsManager)(handler)
	return handler
}

func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				log.Errorf("health check: %s", err)
				pkg.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		pkg.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// notFoundHandler answers unknown API paths with JSON and sends every other
// path to the frontend app.
func notFoundHandler(frontendURL string) http.Handler {
	frontendURL = strings.TrimRight(frontendURL, "/")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
			pkg.WriteError(w, http.StatusNotFound, "API not found")
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			pkg.WriteError(w, http.StatusNotFound, "not_found")
			return
		}
		if frontendURL == "" {
			pkg.WriteError(w, http.StatusInternalServerError, "FRONTEND_URL not configured")
			return
		}
		http.Redirect(w, r, frontendURL+r.URL.RequestURI(), http.StatusFound)
	})
}
