package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/humyn-ai/humyn/go/internal/auth"
	"github.com/humyn-ai/humyn/go/internal/user"
)

type RouterDeps struct {
	Auth     *AuthHandler
	Humanize *HumanizeHandler
	Billing  *BillingHandler
	Admin    *AdminHandler

	AuthMiddleware *auth.Middleware
	Accounts       user.Repository

	AllowedOrigin     string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

func SetupRoutes(deps RouterDeps) *mux.Router {
	r := mux.NewRouter()

	r.Use(CORSMiddleware(deps.AllowedOrigin))
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	r.HandleFunc("/health", HealthHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(RateLimitMiddleware(deps.RateLimitRequests, deps.RateLimitWindow))

	api.HandleFunc("/auth/register", deps.Auth.Register).Methods("POST")
	api.HandleFunc("/auth/login", deps.Auth.Login).Methods("POST")
	api.HandleFunc("/auth/google", deps.Auth.GoogleSignIn).Methods("POST")
	api.Handle("/auth/profile", protected(deps, http.HandlerFunc(deps.Auth.Profile))).Methods("GET")

	// Humanization works for anonymous callers too; the account is attached
	// only when a valid token comes along.
	api.Handle("/humanize", deps.AuthMiddleware.OptionalAuth(
		user.OptionalAccount(deps.Accounts)(http.HandlerFunc(deps.Humanize.Humanize)),
	)).Methods("POST")

	api.Handle("/payment/create-checkout-session", protected(deps, http.HandlerFunc(deps.Billing.CreateCheckoutSession))).Methods("POST")
	api.HandleFunc("/payment/webhook", deps.Billing.HandleWebhook).Methods("POST")

	api.Handle("/analytics", admin(deps, http.HandlerFunc(deps.Admin.Analytics))).Methods("GET")
	api.HandleFunc("/reports", deps.Admin.CreateReport).Methods("POST")
	api.Handle("/reports", admin(deps, http.HandlerFunc(deps.Admin.ListReports))).Methods("GET")
	api.Handle("/reports/{id}", admin(deps, http.HandlerFunc(deps.Admin.DeleteReport))).Methods("DELETE")

	return r
}

func protected(deps RouterDeps, h http.Handler) http.Handler {
	return deps.AuthMiddleware.RequireAuth(user.RequireAccount(deps.Accounts)(h))
}

func admin(deps RouterDeps, h http.Handler) http.Handler {
	return protected(deps, user.RequireAdmin(h))
}
