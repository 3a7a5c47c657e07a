package repository

import "github.com/maxviazov/swc-fantasy-api/internal/model"

const (
	// DefaultLimit applies when a listing request carries no limit.
	DefaultLimit = 100
	// MaxLimit is the default upper bound for a single page.
	MaxLimit = 1000
)

// Page represents a skip/limit window over a filtered set ordered by primary key.
type Page struct {
	Skip  int
	Limit int
}

// DefaultPage returns the window used when a request sets neither skip nor limit.
func DefaultPage() Page { return Page{Skip: 0, Limit: DefaultLimit} }

// Window returns slice bounds selecting max(0, min(limit, n-skip)) items out of n.
// Negative skip or limit are treated as zero.
func Window(n int, p Page) (lo, hi int) {
	skip, limit := p.Skip, p.Limit
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}
	if skip >= n {
		return n, n
	}
	hi = n
	if limit < n-skip {
		hi = skip + limit
	}
	return skip, hi
}

// Paginate cuts the page window out of an already ordered slice.
func Paginate[T any](items []T, p Page) []T {
	lo, hi := Window(len(items), p)
	return items[lo:hi]
}

// ChangedSince keeps records changed on or after the given day. A nil pointer is a no-op.
type ChangedSince struct {
	MinLastChanged *model.Date
}

func (c ChangedSince) matches(d model.Date) bool {
	return c.MinLastChanged == nil || !d.Before(*c.MinLastChanged)
}

// PlayerFilter selects players. Nil fields are absent and never filter.
type PlayerFilter struct {
	Page
	ChangedSince
	FirstName *string
	LastName  *string
}

func (f PlayerFilter) Matches(p model.Player) bool {
	return f.matches(p.LastChangedDate) &&
		eq(f.FirstName, p.FirstName) &&
		eq(f.LastName, p.LastName)
}

// PerformanceFilter selects weekly performances.
type PerformanceFilter struct {
	Page
	ChangedSince
}

func (f PerformanceFilter) Matches(p model.Performance) bool {
	return f.matches(p.LastChangedDate)
}

// LeagueFilter selects leagues.
type LeagueFilter struct {
	Page
	ChangedSince
	LeagueName *string
}

func (f LeagueFilter) Matches(l model.League) bool {
	return f.matches(l.LastChangedDate) && eq(f.LeagueName, l.LeagueName)
}

// TeamFilter selects teams.
type TeamFilter struct {
	Page
	ChangedSince
	TeamName *string
	LeagueID *int64
}

func (f TeamFilter) Matches(t model.Team) bool {
	return f.matches(t.LastChangedDate) &&
		eq(f.TeamName, t.TeamName) &&
		eq(f.LeagueID, t.LeagueID)
}

func eq[T comparable](want *T, got T) bool {
	return want == nil || *want == got
}

// Select applies match, keeps the input order and cuts the page window.
// Callers pass items already sorted by primary key.
func Select[T any](items []T, match func(T) bool, p Page) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if match(it) {
			out = append(out, it)
		}
	}
	return Paginate(out, p)
}
