package swcclient

import (
	"net/url"
	"strconv"
)

// Ptr returns a pointer to v. Optional params are pointers so that "unset" and "zero" stay distinct.
func Ptr[T any](v T) *T { return &v }

// Window carries the paging and change-date filters shared by every list endpoint.
// Nil fields are not sent.
type Window struct {
	Skip               *int
	Limit              *int
	MinLastChangedDate *Date
}

func (w Window) encode(q url.Values) {
	if w.Skip != nil {
		q.Set("skip", strconv.Itoa(*w.Skip))
	}
	if w.Limit != nil {
		q.Set("limit", strconv.Itoa(*w.Limit))
	}
	if w.MinLastChangedDate != nil {
		q.Set("minimum_last_changed_date", w.MinLastChangedDate.String())
	}
}

type PlayerParams struct {
	Window
	FirstName *string
	LastName  *string
}

func (p PlayerParams) values() url.Values {
	q := url.Values{}
	p.encode(q)
	setString(q, "first_name", p.FirstName)
	setString(q, "last_name", p.LastName)
	return q
}

type PerformanceParams struct {
	Window
}

func (p PerformanceParams) values() url.Values {
	q := url.Values{}
	p.encode(q)
	return q
}

type LeagueParams struct {
	Window
	LeagueName *string
}

func (p LeagueParams) values() url.Values {
	q := url.Values{}
	p.encode(q)
	setString(q, "league_name", p.LeagueName)
	return q
}

type TeamParams struct {
	Window
	TeamName *string
	LeagueID *int64
}

func (p TeamParams) values() url.Values {
	q := url.Values{}
	p.encode(q)
	setString(q, "team_name", p.TeamName)
	if p.LeagueID != nil {
		q.Set("league_id", strconv.FormatInt(*p.LeagueID, 10))
	}
	return q
}

func setString(q url.Values, key string, v *string) {
	if v != nil {
		q.Set(key, *v)
	}
}
