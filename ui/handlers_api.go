package ui

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cartsight/domain/metrics"
	"cartsight/internal/errors"
)

// statusFor maps boundary error codes onto HTTP statuses.
func statusFor(code string) int {
	switch code {
	case errors.CodeDataUnavailable:
		return http.StatusServiceUnavailable
	case errors.CodeSchemaError, errors.CodeComputation:
		return http.StatusUnprocessableEntity
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError translates a domain error into a JSON error payload.
func respondError(c *gin.Context, err error) {
	appErr := errors.FromDomain(err)
	log.Printf("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(statusFor(appErr.Code), gin.H{
		"error": appErr.Message,
		"code":  appErr.Code,
	})
}

// renderError is the page-handler counterpart of respondError.
func (s *Server) renderError(c *gin.Context, err error) {
	appErr := errors.FromDomain(err)
	log.Printf("[UI] %s failed: %v", c.Request.URL.Path, err)
	c.String(statusFor(appErr.Code), "%s", appErr.Message)
}

// handleStatus reports whether a dataset is loaded and where it came from.
func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.service.Status())
}

// handleSummary returns the dashboard summary contract.
func (s *Server) handleSummary(c *gin.Context) {
	c.JSON(http.StatusOK, s.service.Summary())
}

// handleCategories returns the category breakdown under the report policy.
func (s *Server) handleCategories(c *gin.Context) {
	s.respondBreakdown(c, s.service.Categories)
}

// handlePayments returns the payment-method breakdown, unfiltered.
func (s *Server) handlePayments(c *gin.Context) {
	s.respondBreakdown(c, s.service.Payments)
}

// handleStates returns the geographic breakdown. top_n selects the
// truncation (default 10, capped at 27 states).
func (s *Server) handleStates(c *gin.Context) {
	topN := 10
	if raw := c.Query("top_n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 27 {
			respondError(c, errors.InvalidInput("top_n must be an integer between 1 and 27"))
			return
		}
		topN = n
	}
	s.respondBreakdown(c, func() ([]metrics.BreakdownRow, error) {
		return s.service.States(topN)
	})
}

func (s *Server) respondBreakdown(c *gin.Context, fetch func() ([]metrics.BreakdownRow, error)) {
	rows, err := fetch()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
