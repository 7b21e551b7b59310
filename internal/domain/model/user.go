// Package model contains domain models passed between layers.
package model

import "time"

// User owns an append-only exercise log.
type User struct {
	ID        string     // opaque unique id, immutable after creation
	Username  string     // caller-supplied, not required to be unique
	Exercises []Exercise // insertion order preserved
}

// Exercise is a single logged activity.
type Exercise struct {
	Description string
	Duration    int       // minutes
	Date        time.Time // calendar day at midnight UTC
}

// Clone returns a deep copy so callers can't mutate the stored log.
func (u User) Clone() User {
	out := u
	if u.Exercises != nil {
		out.Exercises = make([]Exercise, len(u.Exercises))
		copy(out.Exercises, u.Exercises)
	}
	return out
}
