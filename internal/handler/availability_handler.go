package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/payment-scheme-engine/internal/service"
)

type AvailabilityHandler struct {
	svc *service.AvailabilityService
}

func NewAvailabilityHandler(svc *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

// Overview reports the operational status of every scheme at check_time.
func (h *AvailabilityHandler) Overview(c *gin.Context) {
	at, ok := parseCheckTime(c)
	if !ok {
		return
	}

	results, err := h.svc.Overview(c.Request.Context(), at)
	if err != nil {
		c.Error(err)
		return
	}

	operational := 0
	for _, r := range results {
		if r.IsOperational {
			operational++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"check_time": at.Format(time.RFC3339),
		"total":      len(results),
		"open":       operational,
		"schemes":    results,
	})
}
