// Package ui serves the portfolio site: homepage, publication list,
// analysis posts, and the JSON endpoints behind their charts.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"statfolio/app"
	"statfolio/internal"
	"statfolio/ports"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// App represents the UI application
type App struct {
	router    *chi.Mux
	repo      ports.ContentRepository
	reports   *app.ReportService
	templates *template.Template
	log       *internal.Logger
}

// Config holds UI application dependencies
type Config struct {
	Repo    ports.ContentRepository
	Reports *app.ReportService
}

// NewApp creates a new UI application
func NewApp(config Config) (*App, error) {
	if config.Repo == nil {
		return nil, fmt.Errorf("content repository is required")
	}
	if config.Reports == nil {
		return nil, fmt.Errorf("report service is required")
	}

	funcMap := template.FuncMap{
		"pct": func(v float64) string { return fmt.Sprintf("%.2f%%", v*100) },
		"f1":  func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"f2":  func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"f4":  func(v float64) string { return fmt.Sprintf("%.4f", v) },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		repo:      config.Repo,
		reports:   config.Reports,
		templates: templates,
		log:       internal.DefaultLogger,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
}

// setupRoutes configures all HTTP routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleHome)
	a.router.Get("/publications", a.handlePublications)
	a.router.Get("/posts", a.handlePosts)
	a.router.Get("/posts/{slug}", a.handlePost)

	a.router.Route("/api", func(r chi.Router) {
		r.Get("/approximation", a.handleApproximationQuery)
		r.Get("/approximation/report", a.handleApproximationReport)
		r.Get("/trade", a.handleTradeReport)
	})
}

// Router exposes the handler for tests and embedding
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server
func (a *App) Start(addr string) error {
	a.log.Info("UI listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) renderPage(w http.ResponseWriter, name string, data interface{}) {
	if err := a.templates.ExecuteTemplate(w, name, data); err != nil {
		a.log.Error("render %s: %v", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
