// Package logquery applies the filter window and head limit of a log request.
package logquery

import (
	"time"

	"github.com/okian/extracker/internal/domain/model"
)

// Query narrows an exercise log. Nil fields are not applied.
type Query struct {
	From  *time.Time // inclusive lower bound
	To    *time.Time // inclusive upper bound
	Limit *int       // max entries returned, prefix kept
}

// Apply filters log by the window, counts the survivors, then truncates to
// Limit. The returned count is the filtered size before truncation. The input
// slice is never modified.
func (q Query) Apply(log []model.Exercise) ([]model.Exercise, int) {
	filtered := make([]model.Exercise, 0, len(log))
	for _, ex := range log {
		if q.From != nil && ex.Date.Before(*q.From) {
			continue
		}
		if q.To != nil && ex.Date.After(*q.To) {
			continue
		}
		filtered = append(filtered, ex)
	}

	count := len(filtered)
	if q.Limit != nil && *q.Limit >= 0 && *q.Limit < len(filtered) {
		filtered = filtered[:*q.Limit]
	}
	return filtered, count
}

// IsZero reports whether q applies no filtering at all.
func (q Query) IsZero() bool {
	return q.From == nil && q.To == nil && q.Limit == nil
}
