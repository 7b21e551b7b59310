// Package types contains the response shapes shared across the application
package types

import (
	"github.com/okian/extracker/internal/domain/calendar"
	"github.com/okian/extracker/internal/domain/model"
)

// UserView is the public form of a user.
type UserView struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// ExerciseView is returned after logging an exercise.
type ExerciseView struct {
	Username    string `json:"username"`
	ID          string `json:"_id"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogEntry is one row of a user's log.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogView is a user's filtered exercise log.
type LogView struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

// NewUserView projects u without its exercises.
func NewUserView(u model.User) UserView {
	return UserView{ID: u.ID, Username: u.Username}
}

// NewExerciseView combines the owning user and the stored exercise.
func NewExerciseView(u model.User, ex model.Exercise) ExerciseView {
	return ExerciseView{
		Username:    u.Username,
		ID:          u.ID,
		Description: ex.Description,
		Duration:    ex.Duration,
		Date:        calendar.Format(ex.Date),
	}
}

// StatsView summarizes the service for the /stats endpoint.
type StatsView struct {
	Started   bool `json:"started"`
	Users     int  `json:"users"`
	Exercises int  `json:"exercises"`
}

// NewLogView builds a log response. Log is never nil so it encodes as [].
func NewLogView(u model.User, log []model.Exercise, count int) LogView {
	entries := make([]LogEntry, 0, len(log))
	for _, ex := range log {
		entries = append(entries, LogEntry{
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        calendar.Format(ex.Date),
		})
	}
	return LogView{ID: u.ID, Username: u.Username, Count: count, Log: entries}
}
