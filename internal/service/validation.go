package service

import (
	"fmt"

	"github.com/maxviazov/swc-fantasy-api/internal/repository"
)

// validatePage checks the window; nothing is silently clamped.
func (l Limits) validatePage(p repository.Page) []FieldError {
	var ferrs []FieldError
	if p.Skip < 0 {
		ferrs = append(ferrs, FieldError{Field: "skip", Message: "must be >= 0"})
	}
	maxLimit := l.MaxLimit
	if maxLimit <= 0 {
		maxLimit = repository.MaxLimit
	}
	if p.Limit < 0 || p.Limit > maxLimit {
		ferrs = append(ferrs, FieldError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", maxLimit)})
	}
	return ferrs
}
