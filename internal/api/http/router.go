package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"library-loan-backend/internal/domain"
)

// RegisterRoutes wires the JSON API. Route shapes follow the original
// client-facing API so existing callers keep working.
func RegisterRoutes(
	router *mux.Router,
	auth *AuthMiddleware,
	authHandler *AuthHandler,
	bookHandler *BookHandler,
	loanHandler *LoanHandler,
	adminHandler *AdminHandler,
) {
	router.Use(RequestID)

	api := router.PathPrefix("/api").Subrouter()

	// Auth
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)

	// Catalog
	api.HandleFunc("/books", bookHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/books/{id:[0-9]+}", bookHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/books", auth.RequireRole(domain.RoleAdmin, bookHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/books/{id:[0-9]+}", auth.RequireRole(domain.RoleAdmin, bookHandler.Update)).Methods(http.MethodPut)
	api.HandleFunc("/books/{id:[0-9]+}", auth.RequireRole(domain.RoleAdmin, bookHandler.Delete)).Methods(http.MethodDelete)

	api.HandleFunc("/authors", bookHandler.ListAuthors).Methods(http.MethodGet)
	api.HandleFunc("/authors", auth.RequireRole(domain.RoleAdmin, bookHandler.CreateAuthor)).Methods(http.MethodPost)
	api.HandleFunc("/authors/{id:[0-9]+}", auth.RequireRole(domain.RoleAdmin, bookHandler.UpdateAuthor)).Methods(http.MethodPut)
	api.HandleFunc("/authors/{id:[0-9]+}", auth.RequireRole(domain.RoleAdmin, bookHandler.DeleteAuthor)).Methods(http.MethodDelete)

	api.HandleFunc("/categories", bookHandler.ListCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories", auth.RequireRole(domain.RoleAdmin, bookHandler.CreateCategory)).Methods(http.MethodPost)
	api.HandleFunc("/categories/{id:[0-9]+}", auth.RequireRole(domain.RoleAdmin, bookHandler.UpdateCategory)).Methods(http.MethodPut)
	api.HandleFunc("/categories/{id:[0-9]+}", auth.RequireRole(domain.RoleAdmin, bookHandler.DeleteCategory)).Methods(http.MethodDelete)

	// Loans
	api.HandleFunc("/loans", auth.Require(loanHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/loans/my", auth.Require(loanHandler.MyLoans)).Methods(http.MethodGet)
	api.HandleFunc("/loans/requests", auth.RequireRole(domain.RoleAdmin, loanHandler.PendingRequests)).Methods(http.MethodGet)
	api.HandleFunc("/loans/penalties", auth.Require(loanHandler.MyPenalties)).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id:[0-9]+}/approve", auth.RequireRole(domain.RoleAdmin, loanHandler.Approve)).Methods(http.MethodPost)
	api.HandleFunc("/loans/{id:[0-9]+}/reject", auth.RequireRole(domain.RoleAdmin, loanHandler.Reject)).Methods(http.MethodPost)
	api.HandleFunc("/loans/{id:[0-9]+}/return", auth.Require(loanHandler.Return)).Methods(http.MethodPost)

	// Admin
	api.HandleFunc("/admin/users", auth.RequireRole(domain.RoleAdmin, adminHandler.CreateUser)).Methods(http.MethodPost)
	api.HandleFunc("/admin/users", auth.RequireRole(domain.RoleAdmin, adminHandler.ListUsers)).Methods(http.MethodGet)
	api.HandleFunc("/admin/users/{id:[0-9]+}/active", auth.RequireRole(domain.RoleAdmin, adminHandler.SetUserActive)).Methods(http.MethodPost)
	api.HandleFunc("/admin/penalties", auth.RequireRole(domain.RoleAdmin, adminHandler.ListPenalties)).Methods(http.MethodGet)
	api.HandleFunc("/admin/penalties/{id:[0-9]+}/remove", auth.RequireRole(domain.RoleAdmin, adminHandler.WaivePenalty)).Methods(http.MethodPost)
	api.HandleFunc("/admin/penalties/{id:[0-9]+}/pay", auth.RequireRole(domain.RoleAdmin, adminHandler.MarkPenaltyPaid)).Methods(http.MethodPost)
}
