package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/swc-fantasy-api/internal/model"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
	"github.com/maxviazov/swc-fantasy-api/internal/service"
)

// Query parameter names shared with the SDK.
const (
	paramSkip           = "skip"
	paramLimit          = "limit"
	paramMinLastChanged = "minimum_last_changed_date"
	paramFirstName      = "first_name"
	paramLastName       = "last_name"
	paramLeagueName     = "league_name"
	paramTeamName       = "team_name"
	paramLeagueID       = "league_id"
)

// params collects boundary validation failures so one response reports all of them.
type params struct {
	c     *gin.Context
	ferrs []service.FieldError
}

func newParams(c *gin.Context) *params { return &params{c: c} }

// raw returns a query value; a missing key and an empty value are both absent.
func (p *params) raw(key string) (string, bool) {
	v, ok := p.c.GetQuery(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (p *params) fail(field, msg string) {
	p.ferrs = append(p.ferrs, service.FieldError{Field: field, Message: msg})
}

func (p *params) intOr(key string, def int) int {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		p.fail(key, "must be a valid integer")
		return def
	}
	return n
}

func (p *params) page() repository.Page {
	return repository.Page{
		Skip:  p.intOr(paramSkip, 0),
		Limit: p.intOr(paramLimit, repository.DefaultLimit),
	}
}

func (p *params) changedSince() repository.ChangedSince {
	v, ok := p.raw(paramMinLastChanged)
	if !ok {
		return repository.ChangedSince{}
	}
	d, err := model.ParseDate(v)
	if err != nil {
		p.fail(paramMinLastChanged, "must be a date in YYYY-MM-DD format")
		return repository.ChangedSince{}
	}
	return repository.ChangedSince{MinLastChanged: &d}
}

func (p *params) str(key string) *string {
	v, ok := p.raw(key)
	if !ok {
		return nil
	}
	return &v
}

func (p *params) int64(key string) *int64 {
	v, ok := p.raw(key)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		p.fail(key, "must be a valid integer")
		return nil
	}
	return &n
}

func (p *params) pathID(key string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(p.c.Param(key)), 10, 64)
	if err != nil {
		p.fail(key, "must be a valid integer")
		return 0
	}
	return n
}

func (p *params) err() error { return service.NewInvalidInputError(p.ferrs) }
