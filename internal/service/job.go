package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jobtrail/jobtrail/internal/core"
	"github.com/jobtrail/jobtrail/internal/domain/board"
	"github.com/jobtrail/jobtrail/internal/domain/model"
)

// DebugLogger is a minimal logger interface for optional debug logging.
type DebugLogger interface {
	Debug(msg string, keyvals ...any)
}

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Jobs   core.JobRepository
	Clock  Clock       // optional, defaults to wall clock
	Logger DebugLogger // optional
}

// JobService orchestrates job application CRUD and board operations.
// All operations take the caller's user ID; the service never trusts
// ownership data from request bodies.
type JobService struct {
	jobs  core.JobRepository
	clock Clock
	log   DebugLogger
}

// NewJobService constructs a new JobService.
func NewJobService(opts JobServiceOptions) *JobService {
	clock := opts.Clock
	if clock == nil {
		clock = realClock{}
	}
	return &JobService{
		jobs:  opts.Jobs,
		clock: clock,
		log:   opts.Logger,
	}
}

// Create normalizes, validates, and persists a new job for userID.
func (s *JobService) Create(ctx context.Context, userID string, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		req = &model.CreateJobRequest{}
	}
	req.Normalize(s.clock.Now())
	if err := req.Validate(); err != nil {
		return nil, err
	}
	for i := range req.Events {
		if req.Events[i].ID == "" {
			req.Events[i].ID = uuid.NewString()
		}
	}

	job, err := s.jobs.Create(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	s.debug("job created", "job_id", job.ID, "user_id", userID, "source", job.Source)
	return job, nil
}

// Get returns one job owned by userID.
func (s *JobService) Get(ctx context.Context, ref core.JobRef) (*model.Job, error) {
	return s.jobs.GetByID(ctx, ref)
}

// List returns all jobs owned by userID, newest first.
func (s *JobService) List(ctx context.Context, userID string) ([]*model.Job, error) {
	return s.jobs.ListByUser(ctx, userID)
}

// Update applies a partial patch to a job. Identity fields in the patch
// are ignored; a status change leaves the board column where it is.
func (s *JobService) Update(ctx context.Context, ref core.JobRef, req *model.UpdateJobRequest) (*model.Job, error) {
	if req == nil {
		req = &model.UpdateJobRequest{}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	job, err := s.jobs.Update(ctx, ref, req)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

// Move repositions a card on the board. Only (order, column) are written;
// a move that lands on the current position performs no write at all.
func (s *JobService) Move(ctx context.Context, ref core.JobRef, mv board.Move) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, ref)
	if err != nil {
		return nil, err
	}

	changed, err := board.Reconcile(job, mv)
	if err != nil {
		return nil, err
	}
	if !changed {
		return job, nil
	}

	moved, err := s.jobs.UpdateBoardPosition(ctx, core.BoardPositionParams{
		Ref:    ref,
		Column: job.Column,
		Order:  job.Order,
	})
	if err != nil {
		return nil, fmt.Errorf("move job: %w", err)
	}
	s.debug("job moved", "job_id", ref.ID, "column", moved.Column, "order", moved.Order)
	return moved, nil
}

// AppendEvent validates and appends one timeline entry to a job. An empty
// event ID is filled with a generated one.
func (s *JobService) AppendEvent(ctx context.Context, ref core.JobRef, ev model.JobEvent) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, ref)
	if err != nil {
		return nil, err
	}

	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if appendErr := job.AppendEvent(ev); appendErr != nil {
		return nil, appendErr
	}

	updated, err := s.jobs.ReplaceEvents(ctx, ref, job.Events)
	if err != nil {
		return nil, fmt.Errorf("append event: %w", err)
	}
	return updated, nil
}

// Board returns the kanban projection of the user's jobs: every canonical
// column present, cards sorted by position.
func (s *JobService) Board(ctx context.Context, userID string) (board.View, error) {
	jobs, err := s.jobs.ListByUser(ctx, userID)
	if err != nil {
		return board.View{}, fmt.Errorf("load board: %w", err)
	}

	cards := make([]model.Job, len(jobs))
	for i, j := range jobs {
		cards[i] = *j
	}
	return board.BuildView(cards), nil
}

// Delete removes a job owned by userID.
func (s *JobService) Delete(ctx context.Context, ref core.JobRef) (bool, error) {
	deleted, err := s.jobs.Delete(ctx, ref)
	if err != nil {
		return false, fmt.Errorf("delete job: %w", err)
	}
	return deleted, nil
}

func (s *JobService) debug(msg string, keyvals ...any) {
	if s.log != nil {
		s.log.Debug(msg, keyvals...)
	}
}
