package smoke

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/okian/extracker/internal/domain/logquery"
	"github.com/okian/extracker/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// runIDLength is how much of a UUID goes into generated usernames.
const runIDLength = 8

// Run executes the complete smoke test.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("smoke")

	log.Info(ctx, "starting exercise tracker smoke test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("users", config.NumUsers),
		logger.Int("exercises", config.Exercises),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout))

	client := NewClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Plan the workload
	plan := BuildPlan(uuid.NewString()[:runIDLength], config.NumUsers, config.Exercises)

	// Step 3: Create users
	if err := createUsers(ctx, config, client, plan, stats); err != nil {
		return stats, fmt.Errorf("user creation failed: %w", err)
	}

	// Step 4: Log exercises, in order per user
	if err := logExercises(ctx, config, client, plan, stats); err != nil {
		return stats, fmt.Errorf("exercise logging failed: %w", err)
	}

	// Step 5: Verify full and windowed logs
	if err := verifyLogs(ctx, config, client, plan, stats); err != nil {
		return stats, fmt.Errorf("log verification failed: %w", err)
	}

	// Step 6: Save workload to file
	if config.OutputFile != "" {
		if err := savePlan(config.OutputFile, plan); err != nil {
			log.Warn(ctx, "failed to save workload", logger.Error(err))
		} else {
			log.Info(ctx, "workload saved", logger.String("filename", config.OutputFile))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	log.Info(ctx, "smoke test completed successfully")
	return stats, nil
}

func createUsers(ctx context.Context, config *Config, client *Client, plan []PlannedUser, stats *Stats) error {
	failed, err := forEach(ctx, config.Workers, len(plan), func(ctx context.Context, i int) error {
		u, err := client.CreateUser(ctx, plan[i].Username)
		if err != nil {
			return err
		}
		if u.Username != plan[i].Username || u.ID == "" {
			return fmt.Errorf("%w: created %+v for %q", ErrMismatch, u, plan[i].Username)
		}
		plan[i].ID = u.ID
		return nil
	})
	stats.UsersCreated = len(plan) - failed
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(plan))
	for _, u := range plan {
		if _, dup := seen[u.ID]; dup {
			return fmt.Errorf("%w: id %s issued twice", ErrMismatch, u.ID)
		}
		seen[u.ID] = struct{}{}
	}

	if config.Verbose {
		logger.Get().Debug(ctx, "users created", logger.Int("count", stats.UsersCreated))
	}
	return nil
}

func logExercises(ctx context.Context, config *Config, client *Client, plan []PlannedUser, stats *Stats) error {
	logged := make([]int, len(plan))
	failed, err := forEach(ctx, config.Workers, len(plan), func(ctx context.Context, i int) error {
		u := plan[i]
		for _, planned := range u.Exercises {
			got, err := client.AddExercise(ctx, u.ID, planned)
			if err != nil {
				return err
			}
			if err := verifyExercise(u, planned, got); err != nil {
				return err
			}
			logged[i]++
		}
		return nil
	})

	for _, n := range logged {
		stats.ExercisesLogged += n
	}
	stats.ExercisesFailed = failed
	return err
}

func verifyLogs(ctx context.Context, config *Config, client *Client, plan []PlannedUser, stats *Stats) error {
	full := make([]bool, len(plan))
	windowed := make([]bool, len(plan))

	_, err := forEach(ctx, config.Workers, len(plan), func(ctx context.Context, i int) error {
		u := plan[i]

		got, err := client.GetLog(ctx, u.ID, nil)
		if err != nil {
			return err
		}
		if err := VerifyLog(u, logquery.Query{}, got); err != nil {
			return err
		}
		full[i] = true

		w := WindowFor(u)
		got, err = client.GetLog(ctx, u.ID, w.Params)
		if err != nil {
			return err
		}
		if err := VerifyLog(u, w.Query, got); err != nil {
			return err
		}
		windowed[i] = true
		return nil
	})

	for i := range plan {
		if full[i] {
			stats.LogsVerified++
		}
		if windowed[i] {
			stats.WindowsVerified++
		}
	}
	return err
}

// savePlan writes the workload, including server-assigned ids, as JSON.
func savePlan(filename string, plan []PlannedUser) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal workload: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), filePermission); err != nil {
		return fmt.Errorf("failed to write workload: %w", err)
	}
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var perSecond float64
	if stats.Duration > 0 {
		perSecond = float64(stats.ExercisesLogged) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("usersCreated", stats.UsersCreated),
		logger.Int("exercisesLogged", stats.ExercisesLogged),
		logger.Int("exercisesFailed", stats.ExercisesFailed),
		logger.Int("logsVerified", stats.LogsVerified),
		logger.Int("windowsVerified", stats.WindowsVerified),
		logger.Duration("duration", stats.Duration),
		logger.Float64("exercisesPerSecond", perSecond))
}
