package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
	"github.com/maxviazov/swc-fantasy-api/internal/service"
	"github.com/maxviazov/swc-fantasy-api/pkg/response"
)

type TeamHandler struct {
	svc service.TeamService
}

func NewTeamHandler(svc service.TeamService) *TeamHandler { return &TeamHandler{svc: svc} }

func (h *TeamHandler) Register(r *gin.RouterGroup) {
	r.GET("/teams/", h.list)
}

func (h *TeamHandler) list(c *gin.Context) {
	p := newParams(c)
	f := repository.TeamFilter{
		Page:         p.page(),
		ChangedSince: p.changedSince(),
		TeamName:     p.str(paramTeamName),
		LeagueID:     p.int64(paramLeagueID),
	}
	if err := p.err(); err != nil {
		response.WriteError(c, err)
		return
	}
	res, err := h.svc.ListTeams(c.Request.Context(), f)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}
