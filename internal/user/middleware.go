package user

import (
	"context"
	"log"
	"net/http"

	"github.com/humyn-ai/humyn/go/internal/auth"
	"github.com/humyn-ai/humyn/go/internal/models"
)

type dbContextKey string

const dbAccountContextKey dbContextKey = "db_account"

func GetAccountFromContext(ctx context.Context) (*models.Account, bool) {
	account, ok := ctx.Value(dbAccountContextKey).(*models.Account)
	return account, ok
}

// RequireAccount resolves the authenticated account ID to its database
// record. Must run after auth.Middleware.RequireAuth.
func RequireAccount(repo Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountID, ok := auth.AccountIDFromContext(r.Context())
			if !ok {
				http.Error(w, "Access token required", http.StatusUnauthorized)
				return
			}

			account, err := repo.GetByID(r.Context(), accountID)
			if err != nil {
				http.Error(w, "User not found", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), dbAccountContextKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAccount resolves the account when a verified token was attached.
// Lookup failures are swallowed and the request proceeds as anonymous.
func OptionalAccount(repo Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if accountID, ok := auth.AccountIDFromContext(r.Context()); ok {
				account, err := repo.GetByID(r.Context(), accountID)
				if err != nil {
					log.Printf("Failed to resolve account %s, continuing anonymous: %v", accountID, err)
				} else {
					ctx := context.WithValue(r.Context(), dbAccountContextKey, account)
					r = r.WithContext(ctx)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates administrative endpoints on the account role.
// Must run after RequireAccount.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, ok := GetAccountFromContext(r.Context())
		if !ok || account.Role != models.RoleAdmin {
			http.Error(w, "Access denied", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
