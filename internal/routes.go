package internal

import (
	"net/http"

	"esv/internal/controllers"
	"esv/internal/providers"
)

func InitRoutes(dashboardController *controllers.DashboardController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/", http.HandlerFunc(dashboardController.Index))
	routers.Post("/api/dashboard", http.HandlerFunc(dashboardController.Upload))
	routers.Post("/api/validate", http.HandlerFunc(dashboardController.Validate))
	routers.Get("/api/format", http.HandlerFunc(dashboardController.Format))
	return routers
}
