// Package router sets up all HTTP routes and middleware chains for the
// Pressroom API. Routes are organized into public, authenticated, and
// admin groups with the appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pressroom/internal/handlers"
	"pressroom/internal/middleware"
)

// Comment submission is the main abuse channel, so it gets a tighter
// limit than the rest of the API.
const (
	commentLimit  = 5
	commentWindow = time.Minute
	loginLimit    = 10
	loginWindow   = time.Minute
)

// Handlers bundles the handler groups the router wires up.
type Handlers struct {
	Auth       *handlers.Auth
	Posts      *handlers.Posts
	Comments   *handlers.Comments
	Categories *handlers.Categories
	Tags       *handlers.Tags
	Dashboard  *handlers.Dashboard
	SEO        *handlers.SEO
	Images     *handlers.Images
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The returned rate limiters keep background
// goroutines; callers stop them on shutdown.
func New(auth *middleware.Auth, h Handlers) (chi.Router, []*middleware.RateLimiter) {
	commentLimiter := middleware.NewRateLimiter(commentLimit, commentWindow)
	loginLimiter := middleware.NewRateLimiter(loginLimit, loginWindow)

	r := chi.NewRouter()

	// Global middleware.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(auth.Authenticate)

	// Health check.
	r.Get("/health", healthHandler)

	// Crawler artifacts.
	r.Get("/sitemap.xml", h.SEO.Sitemap)
	r.Get("/robots.txt", h.SEO.Robots)

	r.Route("/api", func(r chi.Router) {
		// Login.
		r.With(loginLimiter.Middleware).Post("/login", h.Auth.Login)

		// Public reads.
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.Posts.List)
			r.Get("/featured", h.Posts.Featured)
			r.Get("/search", h.Posts.Search)
			r.Get("/{slug}", h.Posts.GetBySlug)
			r.Get("/{slug}/structured-data", h.SEO.StructuredData)
			r.Get("/{slug}/comments", h.Comments.ListByPost)
			r.With(commentLimiter.Middleware).Post("/{slug}/comments", h.Comments.Create)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Categories.List)
			r.Get("/{slug}", h.Categories.Get)
			r.Get("/{slug}/posts", h.Posts.ListByCategory)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", h.Tags.List)
			r.Get("/popular", h.Tags.Popular)
			r.Get("/{slug}", h.Tags.Get)
			r.Get("/{slug}/posts", h.Posts.ListByTag)
		})

		// Authenticated users: own comments and image uploads.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Put("/comments/{id}", h.Comments.Edit)
			r.Delete("/comments/{id}", h.Comments.Delete)

			r.Route("/images", func(r chi.Router) {
				r.Get("/", h.Images.ListMine)
				r.Post("/", h.Images.Upload)
				r.Delete("/{id}", h.Images.Delete)
			})
		})

		// Admin area.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", h.Posts.AdminList)
				r.Post("/", h.Posts.Create)
				r.Get("/{id}", h.Posts.AdminGet)
				r.Put("/{id}", h.Posts.Update)
				r.Delete("/{id}", h.Posts.Delete)
				r.Post("/{id}/publish", h.Posts.Publish)
				r.Post("/{id}/unpublish", h.Posts.Unpublish)
				r.Post("/{id}/archive", h.Posts.Archive)
				r.Get("/{id}/seo", h.SEO.Analyze)
			})

			r.Route("/comments", func(r chi.Router) {
				r.Get("/", h.Comments.AdminList)
				r.Get("/pending", h.Comments.Pending)
				r.Post("/approve", h.Comments.BulkApprove)
				r.Post("/reject", h.Comments.BulkReject)
				r.Post("/{id}/approve", h.Comments.Approve)
				r.Post("/{id}/reject", h.Comments.Reject)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", h.Categories.Create)
				r.Put("/{id}", h.Categories.Update)
				r.Delete("/{id}", h.Categories.Delete)
			})

			r.Route("/tags", func(r chi.Router) {
				r.Post("/", h.Tags.Create)
				r.Post("/bulk", h.Tags.BulkCreate)
				r.Put("/{id}", h.Tags.Update)
				r.Delete("/{id}", h.Tags.Delete)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", h.Dashboard.Overview)
				r.Get("/analytics", h.Dashboard.Analytics)
				r.Get("/recent-posts", h.Dashboard.RecentPosts)
				r.Get("/popular-posts", h.Dashboard.PopularPosts)
				r.Get("/recent-comments", h.Dashboard.RecentComments)
			})
		})
	})

	return r, []*middleware.RateLimiter{commentLimiter, loginLimiter}
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
