package ui

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"cartsight/adapters/export"
	"cartsight/internal/errors"
)

// handleExportCSV streams the currently loaded dataset as a CSV download.
func (s *Server) handleExportCSV(c *gin.Context) {
	table := s.service.Table()
	if table == nil {
		respondError(c, errors.New(errors.CodeDataUnavailable, "no analysis dataset available"))
		return
	}

	filename := fmt.Sprintf("cart_abandonment_data_%s.csv", exportTimestamp())
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.WriteOrdersCSV(c.Writer, table); err != nil {
		log.Printf("[Export] CSV stream failed: %v", err)
	}
}

// handleExportWorkbook builds the xlsx report, saves a copy into the reports
// directory, and streams it as a download.
func (s *Server) handleExportWorkbook(c *gin.Context) {
	report, err := s.buildReport()
	if err != nil {
		respondError(c, err)
		return
	}

	saved, err := export.SaveWorkbook(report, s.reportsDir)
	if err != nil {
		log.Printf("[Export] Failed to persist report copy: %v", err)
	} else {
		log.Printf("[Export] Report saved as %s", saved)
	}

	f, err := export.BuildWorkbook(report)
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("abandonment_report_%s.xlsx", exportTimestamp())
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[Export] Workbook stream failed: %v", err)
	}
}

func (s *Server) buildReport() (export.Report, error) {
	categories, err := s.service.Categories()
	if err != nil {
		return export.Report{}, err
	}
	payments, err := s.service.Payments()
	if err != nil {
		return export.Report{}, err
	}
	states, err := s.service.States(10)
	if err != nil {
		return export.Report{}, err
	}
	return export.Report{
		Summary:    s.service.Summary(),
		Categories: categories,
		Payments:   payments,
		States:     states,
	}, nil
}

// handleReportFile serves generated artifacts straight from the reports
// directory. Only bare filenames are accepted; anything resembling a path is
// rejected before touching the filesystem.
func (s *Server) handleReportFile(c *gin.Context) {
	filename := c.Param("filename")
	if filename == "" || strings.Contains(filename, "..") ||
		strings.ContainsAny(filename, `/\`) || filename != filepath.Base(filename) {
		respondError(c, errors.InvalidInput("invalid report filename"))
		return
	}

	path := filepath.Join(s.reportsDir, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		respondError(c, errors.NotFound(fmt.Sprintf("report %s", filename)))
		return
	}

	c.FileAttachment(path, filename)
}
