package swcclient

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// Date is a calendar day as sent by the API ("YYYY-MM-DD").
type Date struct {
	time.Time
}

// NewDate builds a UTC calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts "YYYY-MM-DD" or an RFC 3339 timestamp, keeping only the day.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return NewDate(t.Year(), t.Month(), t.Day()), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Health is the root health check body.
type Health struct {
	Message string `json:"message" validate:"required"`
}

type Performance struct {
	PerformanceID   int64   `json:"performance_id" validate:"required"`
	PlayerID        int64   `json:"player_id" validate:"required"`
	WeekNumber      string  `json:"week_number" validate:"required"`
	FantasyPoints   float64 `json:"fantasy_points"`
	LastChangedDate Date    `json:"last_changed_date" validate:"required"`
}

// PlayerBase is a player without nested performances.
type PlayerBase struct {
	PlayerID        int64  `json:"player_id" validate:"required"`
	GSISID          string `json:"gsis_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Position        string `json:"position"`
	LastChangedDate Date   `json:"last_changed_date" validate:"required"`
}

type Player struct {
	PlayerBase
	Performances []Performance `json:"performances" validate:"dive"`
}

// TeamBase is a team without its roster.
type TeamBase struct {
	LeagueID        int64  `json:"league_id" validate:"required"`
	TeamID          int64  `json:"team_id" validate:"required"`
	TeamName        string `json:"team_name"`
	LastChangedDate Date   `json:"last_changed_date" validate:"required"`
}

type Team struct {
	TeamBase
	Players []PlayerBase `json:"players" validate:"dive"`
}

type League struct {
	LeagueID        int64      `json:"league_id" validate:"required"`
	LeagueName      string     `json:"league_name"`
	ScoringType     string     `json:"scoring_type"`
	LastChangedDate Date       `json:"last_changed_date" validate:"required"`
	Teams           []TeamBase `json:"teams" validate:"dive"`
}

// TeamPlayer is one row of the team/player membership relation. Bulk path only.
type TeamPlayer struct {
	TeamID          int64 `json:"team_id" validate:"required"`
	PlayerID        int64 `json:"player_id" validate:"required"`
	LastChangedDate Date  `json:"last_changed_date" validate:"required"`
}

type Counts struct {
	LeagueCount int `json:"league_count" validate:"gte=0"`
	TeamCount   int `json:"team_count" validate:"gte=0"`
	PlayerCount int `json:"player_count" validate:"gte=0"`
}

// newValidator reports JSON field names and treats a zero Date as missing.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		d, ok := field.Interface().(Date)
		if !ok || d.IsZero() {
			return nil
		}
		return d.Time
	}, Date{})
	return v
}

// check validates a struct or every element of a slice of structs.
func check(v *validator.Validate, value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return validationError(v.Struct(value))
	}
	for i := 0; i < rv.Len(); i++ {
		if err := validationError(v.Struct(rv.Index(i).Interface())); err != nil {
			return err
		}
	}
	return nil
}

func validationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ValidationError{Field: verrs[0].Field(), Err: fmt.Errorf("failed %q check", verrs[0].Tag())}
	}
	return &ValidationError{Err: err}
}
