// Package http câble les routes Fiber de l'API du dashboard.
package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/matrix-dsi/matrix-api/internal/application/analytics"
	"github.com/matrix-dsi/matrix-api/internal/application/auth"
)

// RouterDeps dépendances du routeur.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Dashboard (protégé, Bearer token)
	dashboard := api.Group("/dashboard", AuthMiddleware(deps.JWTSecret))
	h := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/filters", h.Filters)
	dashboard.Get("/summary", h.Summary)
	dashboard.Get("/aggregates", h.Aggregates)
	dashboard.Get("/comparison", h.StoreComparison)
	dashboard.Get("/pivot", h.WeeklyPivot)
	dashboard.Get("/pivot.pdf", h.WeeklyPivotPDF)
	dashboard.Get("/series", h.WeeklySeries)
	dashboard.Get("/top-articles", h.TopArticles)
	dashboard.Get("/families", h.FamilyShares)
	dashboard.Get("/detail", h.Detail)
}
