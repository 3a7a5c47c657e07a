package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/swc-fantasy-api/internal/service"
	"github.com/maxviazov/swc-fantasy-api/pkg/response"
)

type AnalyticsHandler struct {
	svc service.AnalyticsService
}

func NewAnalyticsHandler(svc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

func (h *AnalyticsHandler) Register(r *gin.RouterGroup) {
	r.GET("/counts/", h.counts)
}

func (h *AnalyticsHandler) counts(c *gin.Context) {
	counts, err := h.svc.GetCounts(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, counts)
}
