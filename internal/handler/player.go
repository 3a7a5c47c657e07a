package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
	"github.com/maxviazov/swc-fantasy-api/internal/service"
	"github.com/maxviazov/swc-fantasy-api/pkg/response"
)

type PlayerHandler struct {
	svc service.PlayerService
}

func NewPlayerHandler(svc service.PlayerService) *PlayerHandler { return &PlayerHandler{svc: svc} }

func (h *PlayerHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/players")
	{
		g.GET("/", h.list)
		g.GET("/:player_id", h.getByID)
	}
}

func (h *PlayerHandler) list(c *gin.Context) {
	p := newParams(c)
	f := repository.PlayerFilter{
		Page:         p.page(),
		ChangedSince: p.changedSince(),
		FirstName:    p.str(paramFirstName),
		LastName:     p.str(paramLastName),
	}
	if err := p.err(); err != nil {
		response.WriteError(c, err)
		return
	}
	res, err := h.svc.ListPlayers(c.Request.Context(), f)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *PlayerHandler) getByID(c *gin.Context) {
	p := newParams(c)
	id := p.pathID("player_id")
	if err := p.err(); err != nil {
		response.WriteError(c, err)
		return
	}
	player, err := h.svc.GetPlayer(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, player)
}
