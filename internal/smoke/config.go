// Package smoke drives a running exercise tracker over HTTP and checks that
// the logs it returns match what was submitted.
package smoke

import "time"

// Config holds configuration for a smoke run
type Config struct {
	BaseURL    string        // Base URL of the service
	NumUsers   int           // Number of users to create
	Exercises  int           // Exercises logged per user
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Optional workload dump, empty disables it
	Verbose    bool          // Enable verbose logging
}

// PlannedUser is a user the run creates together with the exercises it logs.
type PlannedUser struct {
	Username  string            `json:"username"`
	ID        string            `json:"_id,omitempty"`
	Exercises []PlannedExercise `json:"exercises"`
}

// PlannedExercise is one exercise submission.
type PlannedExercise struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// User mirrors the service's user view.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// Exercise mirrors the service's exercise view.
type Exercise struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogEntry mirrors one entry of a log response.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// Log mirrors the service's log view.
type Log struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

// Stats holds run statistics
type Stats struct {
	UsersCreated    int
	ExercisesLogged int
	ExercisesFailed int
	LogsVerified    int
	WindowsVerified int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}
