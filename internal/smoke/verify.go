package smoke

import (
	"errors"
	"fmt"

	"github.com/okian/extracker/internal/domain/logquery"
)

// ErrMismatch is returned when a response disagrees with the plan.
var ErrMismatch = errors.New("log mismatch")

// VerifyLog compares a log response with what the plan predicts for q.
func VerifyLog(u PlannedUser, q logquery.Query, got Log) error {
	want, count, err := Expected(u, q)
	if err != nil {
		return err
	}

	if got.ID != u.ID {
		return fmt.Errorf("%w: id %q, want %q", ErrMismatch, got.ID, u.ID)
	}
	if got.Username != u.Username {
		return fmt.Errorf("%w: username %q, want %q", ErrMismatch, got.Username, u.Username)
	}
	if got.Count != count {
		return fmt.Errorf("%w: %s count %d, want %d", ErrMismatch, u.ID, got.Count, count)
	}
	if len(got.Log) != len(want) {
		return fmt.Errorf("%w: %s has %d entries, want %d", ErrMismatch, u.ID, len(got.Log), len(want))
	}
	for i := range want {
		if got.Log[i] != want[i] {
			return fmt.Errorf("%w: %s entry %d is %+v, want %+v", ErrMismatch, u.ID, i, got.Log[i], want[i])
		}
	}
	return nil
}

// verifyExercise checks the echo returned by the exercise endpoint.
func verifyExercise(u PlannedUser, planned PlannedExercise, got Exercise) error {
	want, _, err := Expected(PlannedUser{Exercises: []PlannedExercise{planned}}, logquery.Query{})
	if err != nil {
		return err
	}
	if got.ID != u.ID || got.Username != u.Username {
		return fmt.Errorf("%w: exercise echoed user %s/%s, want %s/%s",
			ErrMismatch, got.ID, got.Username, u.ID, u.Username)
	}
	if got.Description != want[0].Description || got.Duration != want[0].Duration || got.Date != want[0].Date {
		return fmt.Errorf("%w: exercise echo %+v, want %+v", ErrMismatch, got, want[0])
	}
	return nil
}
