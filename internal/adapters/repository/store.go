// Package repository defines the user store interface and its in-memory implementation.
package repository

import (
	"context"

	"github.com/okian/extracker/internal/domain/model"
)

// Stats summarises the store contents.
type Stats struct {
	Users     int `json:"users"`
	Exercises int `json:"exercises"`
}

// Store provides read/write access to users and their exercise logs.
// Returned users are copies; mutating them does not affect the store.
type Store interface {
	// CreateUser allocates a fresh id and inserts a user with an empty log.
	CreateUser(ctx context.Context, username string) (model.User, error)

	// ListUsers returns every user in creation order.
	ListUsers(ctx context.Context) ([]model.User, error)

	// GetUser returns the user with the given id.
	// Returns ErrUserNotFound if the id is unknown.
	GetUser(ctx context.Context, id string) (model.User, error)

	// AppendExercise adds ex to the end of the user's log and returns the updated user.
	// Returns ErrUserNotFound if the id is unknown.
	AppendExercise(ctx context.Context, id string, ex model.Exercise) (model.User, error)

	// Stats returns the number of users and exercises held.
	Stats(ctx context.Context) Stats
}
