package swcclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// API paths. Collection paths keep their trailing slash.
const (
	HealthCheckEndpoint      = "/"
	ListLeaguesEndpoint      = "/v0/leagues/"
	ListPlayersEndpoint      = "/v0/players/"
	ListPerformancesEndpoint = "/v0/performances/"
	ListTeamsEndpoint        = "/v0/teams/"
	GetCountsEndpoint        = "/v0/counts/"
)

// maxErrorBody caps how much of a failed response is read for its detail.
const maxErrorBody = 64 << 10

// Client is safe for concurrent use.
type Client struct {
	cfg      Config
	http     *http.Client
	log      zerolog.Logger
	validate *validator.Validate
	policy   RetryPolicy
}

// New validates cfg and builds a client.
func New(cfg Config) (*Client, error) {
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	c := &Client{
		cfg:      cfg,
		http:     cfg.HTTPClient,
		log:      cfg.Logger.With().Str("module", "swcclient").Logger(),
		validate: newValidator(),
	}
	c.policy = RetryPolicy{
		Enabled:         cfg.Backoff,
		InitialInterval: cfg.BackoffInitialInterval,
		MaxElapsedTime:  cfg.BackoffMaxTime,
		Retryable:       IsRetryable,
		Notify: func(err error, wait time.Duration) {
			c.log.Warn().Err(err).Dur("wait", wait).Msg("retrying request")
		},
	}
	c.log.Debug().
		Str("base_url", cfg.BaseURL).
		Bool("backoff", cfg.Backoff).
		Dur("backoff_max_time", cfg.BackoffMaxTime).
		Str("bulk_file_format", string(cfg.BulkFileFormat)).
		Str("bulk_file_base_url", cfg.BulkFileBaseURL).
		Msg("client configured")
	return c, nil
}

// Config returns the effective configuration after defaults.
func (c *Client) Config() Config { return c.cfg }

func (c *Client) HealthCheck(ctx context.Context) (Health, error) {
	return getJSON[Health](ctx, c, HealthCheckEndpoint, nil)
}

func (c *Client) ListLeagues(ctx context.Context, p LeagueParams) ([]League, error) {
	return getJSON[[]League](ctx, c, ListLeaguesEndpoint, p.values())
}

func (c *Client) GetLeague(ctx context.Context, leagueID int64) (League, error) {
	return getJSON[League](ctx, c, ListLeaguesEndpoint+strconv.FormatInt(leagueID, 10), nil)
}

func (c *Client) ListTeams(ctx context.Context, p TeamParams) ([]Team, error) {
	return getJSON[[]Team](ctx, c, ListTeamsEndpoint, p.values())
}

func (c *Client) ListPlayers(ctx context.Context, p PlayerParams) ([]Player, error) {
	return getJSON[[]Player](ctx, c, ListPlayersEndpoint, p.values())
}

func (c *Client) GetPlayer(ctx context.Context, playerID int64) (Player, error) {
	return getJSON[Player](ctx, c, ListPlayersEndpoint+strconv.FormatInt(playerID, 10), nil)
}

func (c *Client) ListPerformances(ctx context.Context, p PerformanceParams) ([]Performance, error) {
	return getJSON[[]Performance](ctx, c, ListPerformancesEndpoint, p.values())
}

func (c *Client) GetCounts(ctx context.Context) (Counts, error) {
	return getJSON[Counts](ctx, c, GetCountsEndpoint, nil)
}

// getJSON fetches endpoint with retries, then decodes and validates the body as T.
func getJSON[T any](ctx context.Context, c *Client, endpoint string, q url.Values) (T, error) {
	var out T
	u := c.cfg.BaseURL + endpoint
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	body, err := c.get(ctx, u)
	if err != nil {
		return out, err
	}
	if err := decodeJSON(body, &out); err != nil {
		c.log.Error().Err(err).Str("url", u).Msg("response does not match schema")
		return out, err
	}
	if err := check(c.validate, out); err != nil {
		c.log.Error().Err(err).Str("url", u).Msg("response failed validation")
		return out, err
	}
	return out, nil
}

// get runs fetch under the client's retry policy.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	return Retrying(c.policy, func(ctx context.Context) ([]byte, error) {
		return c.fetch(ctx, u)
	})(ctx)
}

// fetch makes a single GET and classifies the outcome.
func (c *Client) fetch(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	c.log.Debug().Str("url", u).Msg("request")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.log.Error().Err(err).Str("url", u).Msg("request error")
		return nil, fmt.Errorf("%w: GET %s: %w", ErrTransient, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: read body: %w", ErrTransient, err)
		}
		return body, nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Method: http.MethodGet, URL: u, kind: kindForStatus(resp.StatusCode)}
	apiErr.Detail, apiErr.FieldErrors = readErrorBody(resp.Body)
	c.log.Error().Int("status", resp.StatusCode).Str("url", u).Str("detail", apiErr.Detail).Msg("HTTP status error")
	return nil, apiErr
}

func readErrorBody(r io.Reader) (string, []FieldError) {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var payload struct {
		Detail      json.RawMessage `json:"detail"`
		FieldErrors []FieldError    `json:"field_errors"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return string(raw), nil
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		detail = string(payload.Detail)
	}
	return detail, payload.FieldErrors
}

// decodeJSON maps decode failures onto ValidationError with the offending field.
func decodeJSON(body []byte, out any) error {
	err := json.Unmarshal(body, out)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &ValidationError{Field: typeErr.Field, Err: err}
	}
	return &ValidationError{Err: err}
}
