package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/converse-dev/converse/internal/middleware"
	"github.com/converse-dev/converse/internal/middleware/metrics"
	"github.com/converse-dev/converse/internal/setup"
)

// New wires every route of the API onto a chi router.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := deps.Handler
	needAuth := middleware.NeedAuth(deps.Jwt)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.With(needAuth).Post("/logout", h.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(needAuth)

			r.Get("/users", h.SearchUsers)
			r.Get("/users/me", h.Me)

			r.Route("/conversations", func(r chi.Router) {
				r.Post("/", h.CreateConversation)
				r.Get("/", h.ListConversations)
				r.Route("/{conversation}", func(r chi.Router) {
					r.Get("/", h.GetConversation)
					r.Put("/", h.RenameConversation)
					r.Delete("/", h.DeleteConversation)
					r.Post("/participants", h.AddParticipant)
					r.Get("/participants", h.ListParticipants)
					r.Delete("/participants/{user}", h.RemoveParticipant)
				})
			})

			r.Post("/messages", h.CreateMessage)
			r.Get("/messages/{conversation}", h.ListMessages)
			r.Put("/messages/{message}", h.UpdateMessage)
			r.Delete("/messages/{message}", h.DeleteMessage)

			r.Post("/attachments", h.CreateAttachment)
		})

		// the socket endpoint authenticates itself from the query string
		r.Get("/ws/conversations/{conversation}", h.ConversationSocket)
	})

	r.Options("/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
