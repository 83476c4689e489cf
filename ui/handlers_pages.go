package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"cartsight/domain/metrics"
	"cartsight/domain/order"
)

// exploreViews are the selectable views on the interactive explorer, in
// display order.
var exploreViews = []string{
	"executive",
	"category",
	"payment",
	"geographic",
	"detailed",
}

// detailSampleRows caps how many raw rows the detailed-data view shows.
const detailSampleRows = 100

// handleIndex renders the report dashboard: summary cards plus the three
// breakdown tables in the standard report policy.
func (s *Server) handleIndex(c *gin.Context) {
	status := s.service.Status()
	data := gin.H{
		"Status":  status,
		"Summary": s.service.Summary(),
	}

	categories, err := s.service.Categories()
	if err != nil {
		s.renderError(c, err)
		return
	}
	payments, err := s.service.Payments()
	if err != nil {
		s.renderError(c, err)
		return
	}
	states, err := s.service.States(10)
	if err != nil {
		s.renderError(c, err)
		return
	}

	data["Categories"] = categories
	data["Payments"] = payments
	data["States"] = states
	s.renderTemplate(c, "index.html", data)
}

// handleAbout renders the methodology page from embedded markdown.
func (s *Server) handleAbout(c *gin.Context) {
	s.renderTemplate(c, "about.html", gin.H{
		"Status":  s.service.Status(),
		"Content": s.aboutHTML,
	})
}

// handleExplore renders the interactive explorer. The view query parameter
// selects which slice of the analysis is shown; unknown views get 400.
func (s *Server) handleExplore(c *gin.Context) {
	view := c.DefaultQuery("view", "executive")

	data := gin.H{
		"Status": s.service.Status(),
		"View":   view,
		"Views":  exploreViews,
	}

	switch view {
	case "executive":
		data["Summary"] = s.service.Summary()
		hist := s.service.CartValueHistogram()
		data["Histogram"] = hist
	case "category":
		rows, err := s.service.Categories()
		if err != nil {
			s.renderError(c, err)
			return
		}
		data["Rows"] = rows
		data["Title"] = "Product Category Analysis"
	case "payment":
		rows, err := s.service.Payments()
		if err != nil {
			s.renderError(c, err)
			return
		}
		data["Rows"] = rows
		data["Title"] = "Payment Method Analysis"
	case "geographic":
		rows, err := s.service.States(15)
		if err != nil {
			s.renderError(c, err)
			return
		}
		data["Rows"] = rows
		data["Title"] = "Geographic Analysis"
	case "detailed":
		data["Detail"] = s.detailView()
	default:
		c.String(http.StatusBadRequest, "unknown view: %s", view)
		return
	}

	s.renderTemplate(c, "explore.html", data)
}

// detailData is the detailed-data view payload: dataset shape, data quality,
// and a bounded raw sample.
type detailData struct {
	RowCount     int
	Columns      []string
	DateRange    string
	MissingCells map[string]int
	Sample       []order.Order
	Summary      metrics.Summary
}

func (s *Server) detailView() detailData {
	table := s.service.Table()
	detail := detailData{Summary: s.service.Summary()}
	if table == nil {
		return detail
	}

	detail.RowCount = table.Len()
	detail.Columns = table.Columns
	detail.MissingCells = table.MissingCells

	if min, max, ok := table.PurchaseRange(); ok {
		detail.DateRange = fmt.Sprintf("%s to %s",
			min.Format("2006-01-02"), max.Format("2006-01-02"))
	}

	sample := table.Orders
	if len(sample) > detailSampleRows {
		sample = sample[:detailSampleRows]
	}
	detail.Sample = sample
	return detail
}

// loadAboutPage reads the embedded methodology markdown and renders it to
// HTML once at startup.
func (s *Server) loadAboutPage() error {
	raw, err := fs.ReadFile(s.assets, "ui/about.md")
	if err != nil {
		return fmt.Errorf("failed to read about page: %w", err)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags,
	})
	s.aboutHTML = template.HTML(markdown.ToHTML(raw, p, renderer))
	return nil
}

// renderTemplate executes a template into a buffer first so a template error
// never leaves a half-written page on the wire.
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf("Template error for %s: %v", templateName, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Template rendering failed"})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		log.Printf("Error writing template response: %v", err)
	}
}

// exportTimestamp names downloadable artifacts consistently.
func exportTimestamp() string {
	return time.Now().Format("20060102_150405")
}
