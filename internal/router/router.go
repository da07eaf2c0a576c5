package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yatube-dev/yatube/internal/middleware"
	"github.com/yatube-dev/yatube/internal/middleware/metrics"
	"github.com/yatube-dev/yatube/internal/pagecache"
	"github.com/yatube-dev/yatube/internal/setup"
)

// room for the text fields and multipart framing around an image
const formOverhead = 1 << 20

// New creates and configures a new chi router with all the routes.
// A rate limiter passed to several routes is shared between them.
func New(deps *setup.Dependencies) *chi.Mux {
	cfg := deps.Config.Public
	h := deps.Handler
	authMw := deps.AuthMiddleware

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(handlers.CompressHandler)
	r.Use(middleware.SecurityHeadersWithCSP(cfg.SecureCookies, middleware.DefaultCSP))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticPath))))
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaPath))))

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		api.With(pagecache.Middleware(deps.Cache, "api_posts", cfg.IndexCacheTTL)).Get("/posts/", h.APIPosts)
		api.Get("/posts/{id}/", h.APIPost)
		api.Get("/group/{slug}/", h.APIGroup)
	})

	authLimit := middleware.RateLimit(deps.AuthLimiter, middleware.GetIP)
	writeLimit := middleware.RateLimit(deps.WriteLimiter, middleware.UserOrIP)

	r.Group(func(site chi.Router) {
		site.Use(chimw.RequestSize(cfg.MaxImageSize + formOverhead))
		site.Use(authMw.OptionalAuth())
		site.Use(middleware.GenerateCSRFToken(middleware.CSRFConfig{SecureCookies: cfg.SecureCookies}))
		site.Use(middleware.ValidateCSRFToken(http.HandlerFunc(h.CSRFFailure)))

		site.NotFound(h.NotFound)

		site.Get("/", h.Index)
		site.Get("/group/{slug}/", h.GroupPosts)
		site.Get("/profile/{username}/", h.Profile)
		site.Get("/posts/{id}/", h.PostDetail)

		site.Get("/auth/signup/", h.SignupGet)
		site.With(authLimit).Post("/auth/signup/", h.SignupPost)
		site.Get("/auth/login/", h.LoginGet)
		site.With(authLimit).Post("/auth/login/", h.LoginPost)
		site.Post("/auth/logout/", h.Logout)

		site.Group(func(private chi.Router) {
			private.Use(authMw.NeedAuth())

			private.Get("/follow/", h.FollowIndex)
			private.Get("/create/", h.PostCreateGet)
			private.With(writeLimit).Post("/create/", h.PostCreatePost)
			private.Get("/posts/{id}/edit/", h.PostEditGet)
			private.With(writeLimit).Post("/posts/{id}/edit/", h.PostEditPost)
			private.With(writeLimit).Post("/posts/{id}/comment/", h.AddComment)

			// the trailing slash is optional on follow links
			for _, suffix := range []string{"", "/"} {
				private.With(writeLimit).Get("/profile/{username}/follow"+suffix, h.ProfileFollow)
				private.With(writeLimit).Get("/profile/{username}/unfollow"+suffix, h.ProfileUnfollow)
			}
		})
	})

	return r
}
