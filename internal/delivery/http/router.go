package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"signinsheet/internal/delivery/http/controllers"
	"signinsheet/internal/delivery/http/web"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	eventController *controllers.EventController,
	signInController *controllers.SignInController,
	adminController *controllers.AdminController,
	pages *web.Pages,
) *http.ServeMux {
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEventByID)
	mux.HandleFunc("GET /events/{eventID}/qr", eventController.GetEventQR)

	mux.HandleFunc("POST /events/{eventID}/entries", signInController.SubmitEntry)

	// Admin (shared-secret gated via the key query parameter)
	mux.HandleFunc("GET /events/{eventID}/entries", adminController.ListEntries)
	mux.HandleFunc("GET /events/{eventID}/export", adminController.ExportEntries)
	mux.HandleFunc("POST /events/{eventID}/reset", adminController.ResetEntries)
	mux.HandleFunc("POST /events/{eventID}/qr/regenerate", adminController.RegenerateQR)

	// HTML surface: single entry point dispatching on event + mode params
	mux.HandleFunc("GET /{$}", pages.Index)
	mux.HandleFunc("GET /index.html", pages.Index)
	mux.HandleFunc("POST /{$}", pages.CreateEvent)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
