package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Chart endpoints return render-ready payloads; the front-end plots them
// without re-deriving anything from the raw contracts.

func (s *Server) handleAbandonmentPie(c *gin.Context) {
	c.JSON(http.StatusOK, s.service.AbandonmentPie())
}

func (s *Server) handleCategoryBar(c *gin.Context) {
	chart, err := s.service.CategoryBar()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chart)
}

func (s *Server) handlePaymentBar(c *gin.Context) {
	chart, err := s.service.PaymentBar()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chart)
}

func (s *Server) handleStateBar(c *gin.Context) {
	chart, err := s.service.StateBar(15)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chart)
}

func (s *Server) handleCartValueHist(c *gin.Context) {
	c.JSON(http.StatusOK, s.service.CartValueHistogram())
}
