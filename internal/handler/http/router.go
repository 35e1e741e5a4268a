package http

import (
	"log/slog"
	"os"

	"github.com/crewdesk/membership-backend-go/internal/handler/http/middleware"
	"github.com/crewdesk/membership-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	membershipHandler MembershipHandler,
	inviteHandler InviteHandler,
	employeeHandler EmployeeHandler,
	accountHandler AccountHandler,
	menuHandler MenuHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "membership-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/members", func(r chi.Router) {
				r.Get("/", membershipHandler.ListMembers)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/pending", membershipHandler.ListPending)
					r.Get("/pending/count", membershipHandler.PendingCount)
					r.Post("/{id}/approve", membershipHandler.Approve)
					r.Post("/{id}/reject", membershipHandler.Reject)
					r.Patch("/{id}/role", membershipHandler.ChangeRole)
				})

				// Owner only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOwner)
					r.Delete("/{id}", membershipHandler.Remove)
				})
			})

			r.Route("/invites", func(r chi.Router) {
				r.Post("/{token}/redeem", inviteHandler.RedeemInvite)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", inviteHandler.CreateInvite)
					r.Delete("/{id}", inviteHandler.RevokeInvite)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.ListEmployees)
				r.Get("/{id}", employeeHandler.GetEmployee)
				r.Patch("/{id}", employeeHandler.UpdateEmployee)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", employeeHandler.LinkNew)
					r.Post("/{id}/link", employeeHandler.LinkExisting)
				})
			})

			r.Route("/account/password", func(r chi.Router) {
				r.Post("/verify", accountHandler.VerifyPassword)
				r.Delete("/verify", accountHandler.ResetVerification)
				r.Put("/", accountHandler.ChangePassword)
			})

			r.Get("/menu", menuHandler.GetMenu)
		})
	})
	return r
}
