// Package highscore stores level scores and publishes them without
// blocking the simulation.
package highscore

import (
	"context"
	"errors"
	"time"
)

//go:generate mockgen -destination=mock/submitter.go -package=highscoremock -source=submitter.go

// Submitter persists one score for a user.
type Submitter interface {
	SubmitScore(ctx context.Context, userID string, score int) error
}

var (
	ErrInvalidArgument = errors.New("highscore: invalid argument")
	ErrNotFound        = errors.New("highscore: not found")
)

// Record is one stored score.
type Record struct {
	ID        string
	UserID    string
	Score     int
	CreatedAt time.Time
}
