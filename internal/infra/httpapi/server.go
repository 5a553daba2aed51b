package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates the router with all routes configured.
// allowedOrigins may contain wildcards such as "https://*.vercel.app".
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/send-reminder", h.SendReminder)
		r.Post("/send-reminder-phase", h.SendReminderPhase)
		r.Post("/send-reminder-auto", h.SendReminderAuto)
		r.Post("/send-reminder-personal", h.SendReminderPersonal)
		r.Get("/reminder-status", h.ReminderStatus)

		r.Route("/notification", func(r chi.Router) {
			r.Post("/first-plan-approved", h.FirstPlanApproved)
			r.Post("/second-plan-approved", h.SecondPlanApproved)
			r.Post("/test", h.TestNotification)
		})

		r.Route("/webhook", func(r chi.Router) {
			r.Post("/line", h.LineWebhook)
			r.Get("/line", h.LineWebhookCheck)
		})
	})

	return r
}

// NewServer wraps the router in an http.Server listening on addr.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
