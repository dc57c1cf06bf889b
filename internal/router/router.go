// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Preethi-Heba/flight-booking-app/internal/handler"
	"github.com/Preethi-Heba/flight-booking-app/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Register,
// login, refresh and logout live under /v1/auth and need no session;
// /v1/me sits behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterAPI registers the flight catalog and booking ledger routes.
// Every route requires a valid access token; the optional cacheMW is
// applied to the flight listing only, where responses are identical
// for all callers.
func RegisterAPI(e *echo.Echo, f *handler.FlightHandler, b *handler.BookingHandler, jwtSecret string, cacheMW echo.MiddlewareFunc) {
	api := e.Group("/v1")
	api.Use(middleware.JWTAuth(jwtSecret))

	if cacheMW != nil {
		api.GET("/flights", f.List, cacheMW)
	} else {
		api.GET("/flights", f.List)
	}
	api.GET("/flights/:id", f.Get)
	api.POST("/flights", f.Add)

	api.POST("/flights/:id/book", b.Book)
	api.GET("/bookings", b.MyBookings)
}
