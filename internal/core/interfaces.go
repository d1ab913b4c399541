package core

import (
	"context"

	"github.com/jobtrail/jobtrail/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// JobRef identifies one job within one user's collection. Every lookup and
// mutation is scoped by UserID so a caller can never reach another user's
// records, even with a known job ID.
type JobRef struct {
	UserID string
	ID     string
}

// BoardPositionParams groups parameters for UpdateBoardPosition (≤3 params rule).
type BoardPositionParams struct {
	Ref    JobRef
	Column string
	Order  int
}

// JobRepository defines the interface for job data operations.
type JobRepository interface {
	Create(ctx context.Context, userID string, req *model.CreateJobRequest) (*model.Job, error)
	GetByID(ctx context.Context, ref JobRef) (*model.Job, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Job, error)
	Update(ctx context.Context, ref JobRef, req *model.UpdateJobRequest) (*model.Job, error)
	// UpdateBoardPosition writes only the (order, column) pair of the
	// referenced job. Status and all other fields are left as stored.
	UpdateBoardPosition(ctx context.Context, params BoardPositionParams) (*model.Job, error)
	// ReplaceEvents overwrites the job's timeline with the given list.
	ReplaceEvents(ctx context.Context, ref JobRef, events []model.JobEvent) (*model.Job, error)
	Delete(ctx context.Context, ref JobRef) (bool, error)
}
