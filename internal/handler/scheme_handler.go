package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/payment-scheme-engine/internal/dto"
	"github.com/anyulbade/payment-scheme-engine/internal/service"
)

type SchemeHandler struct {
	svc *service.SchemeService
}

func NewSchemeHandler(svc *service.SchemeService) *SchemeHandler {
	return &SchemeHandler{svc: svc}
}

func (h *SchemeHandler) Create(c *gin.Context) {
	var req dto.SaveSchemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	scheme, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, scheme)
}

func (h *SchemeHandler) List(c *gin.Context) {
	kind := c.Query("kind")
	currency := c.Query("currency")
	country := c.Query("country")

	p := dto.ParsePagination(c)

	schemes, totalItems, err := h.svc.List(c.Request.Context(), kind, currency, country, p.PageSize, p.Offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       schemes,
		"pagination": dto.NewPagination(p.Page, p.PageSize, totalItems),
	})
}

func (h *SchemeHandler) Get(c *gin.Context) {
	scheme, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, scheme)
}

func (h *SchemeHandler) Update(c *gin.Context) {
	var req dto.SaveSchemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	scheme, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, scheme)
}

func (h *SchemeHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Availability reports whether a scheme is operational at check_time,
// defaulting to now when the parameter is omitted.
func (h *SchemeHandler) Availability(c *gin.Context) {
	at, ok := parseCheckTime(c)
	if !ok {
		return
	}

	resp, err := h.svc.CheckAvailability(c.Request.Context(), c.Param("id"), at)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *SchemeHandler) CalculateFees(c *gin.Context) {
	var req dto.FeeQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	resp, err := h.svc.QuoteFees(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ValidateCompatibility is a business decision, not an error path: an
// incompatible scheme still yields 200 with the collected reasons.
func (h *SchemeHandler) ValidateCompatibility(c *gin.Context) {
	var req dto.CompatibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	resp, err := h.svc.CheckCompatibility(c.Request.Context(), c.Param("id"), &req, time.Now())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func parseCheckTime(c *gin.Context) (time.Time, bool) {
	raw := c.Query("check_time")
	if raw == "" {
		return time.Now(), true
	}

	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_time, expected RFC3339"})
		return time.Time{}, false
	}
	return at, true
}
