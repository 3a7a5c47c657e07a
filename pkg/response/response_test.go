package response_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/maxviazov/swc-fantasy-api/internal/repository"
	"github.com/maxviazov/swc-fantasy-api/internal/service"
	"github.com/maxviazov/swc-fantasy-api/pkg/response"
)

// fakeInvalid mimics the service's aggregated validation error without reaching into internals.
type fakeInvalid struct{ fe []service.FieldError }

func (f *fakeInvalid) Error() string                { return service.ErrInvalidInput.Error() }
func (f *fakeInvalid) Unwrap() error                { return service.ErrInvalidInput }
func (f *fakeInvalid) Fields() []service.FieldError { return f.fe }

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		in         error
		wantCode   int
		wantDetail string
	}{
		{"invalid_input", &fakeInvalid{fe: []service.FieldError{{Field: "limit", Message: "bad"}}}, 422, "one or more fields are invalid"},
		{"player_not_found", &service.NotFoundError{Kind: "Player"}, 404, "Player not found"},
		{"wrapped_not_found", fmt.Errorf("lookup: %w", &service.NotFoundError{Kind: "League"}), 404, "League not found"},
		{"bare_not_found", repository.ErrNotFound, 404, "Not found"},
		{"unavailable", errors.Join(repository.ErrUnavailable, errors.New("dial tcp")), 503, "Service Unavailable"},
		{"internal", errors.New("boom"), 500, "Internal Server Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := response.MapError(tc.in)
			if code != tc.wantCode || payload.Detail != tc.wantDetail {
				t.Fatalf("unexpected mapping: got (%d,%s) want (%d,%s)", code, payload.Detail, tc.wantCode, tc.wantDetail)
			}
			if tc.wantCode == 422 && len(payload.FieldErrors) == 0 {
				t.Fatalf("expected field errors in payload")
			}
			if tc.wantCode == 500 && payload.Detail == tc.in.Error() {
				t.Fatalf("internal error text leaked")
			}
		})
	}
}
