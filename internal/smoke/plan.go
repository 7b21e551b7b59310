package smoke

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/okian/extracker/internal/domain/calendar"
	"github.com/okian/extracker/internal/domain/logquery"
	"github.com/okian/extracker/internal/domain/model"
)

// windowLimit caps the filtered log request made for every user.
const windowLimit = 2

// planBase is the day of the newest planned exercise.
var planBase = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// BuildPlan lays out users and exercises deterministically. Dates descend
// within each user so a server that sorts instead of preserving submission
// order is caught.
func BuildPlan(runID string, numUsers, perUser int) []PlannedUser {
	users := make([]PlannedUser, numUsers)
	for i := range users {
		exercises := make([]PlannedExercise, perUser)
		for j := range exercises {
			day := planBase.AddDate(0, 0, perUser-1-j)
			exercises[j] = PlannedExercise{
				Description: fmt.Sprintf("session %d", j+1),
				Duration:    (j%6 + 1) * 10,
				Date:        day.Format(time.DateOnly),
			}
		}
		users[i] = PlannedUser{
			Username:  fmt.Sprintf("smoke-%s-%d", runID, i),
			Exercises: exercises,
		}
	}
	return users
}

// Window is a filtered log request and the query it corresponds to.
type Window struct {
	Params url.Values
	Query  logquery.Query
}

// WindowFor trims one day off each end of the planned range and caps the
// result at windowLimit entries.
func WindowFor(u PlannedUser) Window {
	n := len(u.Exercises)
	from := planBase.AddDate(0, 0, 1)
	to := planBase.AddDate(0, 0, n-2)
	limit := windowLimit

	return Window{
		Params: url.Values{
			"from":  {from.Format(time.DateOnly)},
			"to":    {to.Format(time.DateOnly)},
			"limit": {strconv.Itoa(limit)},
		},
		Query: logquery.Query{From: &from, To: &to, Limit: &limit},
	}
}

// Expected returns the log and count the service should answer with for q.
func Expected(u PlannedUser, q logquery.Query) ([]LogEntry, int, error) {
	stored := make([]model.Exercise, 0, len(u.Exercises))
	for _, ex := range u.Exercises {
		day, err := calendar.Parse(ex.Date)
		if err != nil {
			return nil, 0, err
		}
		stored = append(stored, model.Exercise{Description: ex.Description, Duration: ex.Duration, Date: day})
	}

	filtered, count := q.Apply(stored)
	out := make([]LogEntry, 0, len(filtered))
	for _, ex := range filtered {
		out = append(out, LogEntry{Description: ex.Description, Duration: ex.Duration, Date: calendar.Format(ex.Date)})
	}
	return out, count, nil
}
