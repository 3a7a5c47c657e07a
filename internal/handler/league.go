package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
	"github.com/maxviazov/swc-fantasy-api/internal/service"
	"github.com/maxviazov/swc-fantasy-api/pkg/response"
)

type LeagueHandler struct {
	svc service.LeagueService
}

func NewLeagueHandler(svc service.LeagueService) *LeagueHandler { return &LeagueHandler{svc: svc} }

func (h *LeagueHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/leagues")
	{
		g.GET("/", h.list)
		g.GET("/:league_id", h.getByID)
	}
}

func (h *LeagueHandler) list(c *gin.Context) {
	p := newParams(c)
	f := repository.LeagueFilter{
		Page:         p.page(),
		ChangedSince: p.changedSince(),
		LeagueName:   p.str(paramLeagueName),
	}
	if err := p.err(); err != nil {
		response.WriteError(c, err)
		return
	}
	res, err := h.svc.ListLeagues(c.Request.Context(), f)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *LeagueHandler) getByID(c *gin.Context) {
	p := newParams(c)
	id := p.pathID("league_id")
	if err := p.err(); err != nil {
		response.WriteError(c, err)
		return
	}
	league, err := h.svc.GetLeague(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, league)
}
