package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cartsight/app"
)

// Server is the dashboard web server. It owns the gin router, the parsed
// templates, and a handle to the report service; every handler reads through
// the service so the engine never sees HTTP concerns.
type Server struct {
	router     *gin.Engine
	service    *app.ReportService
	templates  *template.Template
	assets     fs.FS
	reportsDir string
	aboutHTML  template.HTML
}

// NewServer creates a server around the UI assets, normally the embedded
// filesystem rooted at the repository (paths start with "ui/").
func NewServer(assets fs.FS) *Server {
	return &Server{
		router: gin.Default(),
		assets: assets,
	}
}

// Initialize wires the report service and reports directory, parses the
// embedded templates, and registers middleware and routes.
func (s *Server) Initialize(service *app.ReportService, reportsDir string) error {
	s.service = service
	s.reportsDir = reportsDir

	funcMap := template.FuncMap{
		"pct": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v*100)
		},
		"money": func(v float64) string {
			return fmt.Sprintf("$%.2f", v)
		},
		"rate": func(v float64) string {
			return fmt.Sprintf("%.3f", v)
		},
		"add":   func(a, b int) int { return a + b },
		"upper": strings.ToUpper,
	}

	templatesFS, err := fs.Sub(s.assets, "ui/templates")
	if err != nil {
		return fmt.Errorf("failed to create templates filesystem: %w", err)
	}

	files, err := fs.Glob(templatesFS, "*.html")
	if err != nil {
		return fmt.Errorf("failed to glob templates: %w", err)
	}
	log.Printf("[TemplateInit] Found %d template files: %v", len(files), files)

	s.templates = template.New("").Funcs(funcMap)
	for _, file := range files {
		content, err := fs.ReadFile(templatesFS, file)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", file, err)
		}
		if _, err := s.templates.New(file).Parse(string(content)); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", file, err)
		}
	}

	if err := s.loadAboutPage(); err != nil {
		return err
	}

	s.setupMiddleware()
	s.setupRoutes()
	return nil
}

// setupMiddleware serves static assets from the embedded filesystem.
func (s *Server) setupMiddleware() {
	staticFS, err := fs.Sub(s.assets, "ui/static")
	if err != nil {
		log.Printf("[Static] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes.
func (s *Server) setupRoutes() {
	// Pages
	s.router.GET("/", s.handleIndex)
	s.router.GET("/about", s.handleAbout)
	s.router.GET("/explore", s.handleExplore)

	// Metric contracts as JSON
	s.router.GET("/api/status", s.handleStatus)
	s.router.GET("/api/summary", s.handleSummary)
	s.router.GET("/api/categories", s.handleCategories)
	s.router.GET("/api/payments", s.handlePayments)
	s.router.GET("/api/states", s.handleStates)

	// Chart payloads
	s.router.GET("/api/charts/abandonment_pie", s.handleAbandonmentPie)
	s.router.GET("/api/charts/category_bar", s.handleCategoryBar)
	s.router.GET("/api/charts/payment_bar", s.handlePaymentBar)
	s.router.GET("/api/charts/state_bar", s.handleStateBar)
	s.router.GET("/api/charts/cart_value_hist", s.handleCartValueHist)

	// Exports and report artifact pass-through
	s.router.GET("/api/export/dataset.csv", s.handleExportCSV)
	s.router.GET("/api/export/report.xlsx", s.handleExportWorkbook)
	s.router.GET("/reports/:filename", s.handleReportFile)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the web server.
func (s *Server) Start(addr string) error {
	log.Printf("Starting CartSight dashboard on http://%s", addr)
	return s.router.Run(addr)
}
