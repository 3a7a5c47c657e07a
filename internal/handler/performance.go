package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
	"github.com/maxviazov/swc-fantasy-api/internal/service"
	"github.com/maxviazov/swc-fantasy-api/pkg/response"
)

type PerformanceHandler struct {
	svc service.PerformanceService
}

func NewPerformanceHandler(svc service.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{svc: svc}
}

func (h *PerformanceHandler) Register(r *gin.RouterGroup) {
	r.GET("/performances/", h.list)
}

func (h *PerformanceHandler) list(c *gin.Context) {
	p := newParams(c)
	f := repository.PerformanceFilter{Page: p.page(), ChangedSince: p.changedSince()}
	if err := p.err(); err != nil {
		response.WriteError(c, err)
		return
	}
	res, err := h.svc.ListPerformances(c.Request.Context(), f)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}
