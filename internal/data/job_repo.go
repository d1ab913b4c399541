package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jobtrail/jobtrail/internal/core"
	"github.com/jobtrail/jobtrail/internal/data/pgxutil"
	"github.com/jobtrail/jobtrail/internal/domain/model"
	apperrors "github.com/jobtrail/jobtrail/internal/errors"
)

const jobColumns = `id, company, position, applied_date, status, source,
	from_url, salary, location, notes, events, user_id,
	sort_order, board_column, created_at, updated_at`

// JobRepo provides database operations for job application records.
// Every query is scoped by user_id; a job ID alone never resolves a row.
type JobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewJobRepo creates a new JobRepo instance with the given database connection.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{
		DB:           db,
		timeProvider: &RealTimeProvider{},
	}
}

// NewJobRepoWithTimeProvider creates a JobRepo with a custom TimeProvider (useful for testing).
func NewJobRepoWithTimeProvider(db *sql.DB, timeProvider TimeProvider) *JobRepo {
	return &JobRepo{
		DB:           db,
		timeProvider: timeProvider,
	}
}

// Create inserts a new job owned by userID. The request must already be
// normalized and validated by the service layer.
func (r *JobRepo) Create(ctx context.Context, userID string, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, apperrors.Validation("create job request is required")
	}

	eventsJSON, err := json.Marshal(req.Events)
	if err != nil {
		return nil, fmt.Errorf("marshal events: %w", err)
	}

	now := r.timeProvider.Now().UTC()
	query := `
		INSERT INTO jobs (id, company, position, applied_date, status, source,
		                  from_url, salary, location, notes, events, user_id,
		                  sort_order, board_column, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::jsonb, $12, $13, $14, $15, $15)
		RETURNING ` + jobColumns

	var job model.Job
	err = pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, query,
			uuid.NewString(), req.Company, req.Position, req.AppliedDate,
			req.Status, req.Source, req.FromURL, req.Salary, req.Location,
			req.Notes, eventsJSON, userID, req.Order, req.Column, now)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		job, queryErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return queryErr
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &job, nil
}

// GetByID retrieves a job by reference. Missing rows and rows owned by a
// different user are indistinguishable: both return not found.
func (r *JobRepo) GetByID(ctx context.Context, ref core.JobRef) (*model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 AND user_id = $2`

	var job model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, query, ref.ID, ref.UserID)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		job, queryErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return queryErr
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &job, nil
}

// ListByUser retrieves all jobs owned by userID, newest first.
func (r *JobRepo) ListByUser(ctx context.Context, userID string) ([]*model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE user_id = $1 ORDER BY created_at DESC`

	var jobs []model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, query, userID)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		jobs, queryErr = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
		return queryErr
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}

	result := make([]*model.Job, len(jobs))
	for i := range jobs {
		result[i] = &jobs[i]
	}
	return result, nil
}

// buildJobUpdateSQL constructs the UPDATE statement for a partial job patch.
func (r *JobRepo) buildJobUpdateSQL(ref core.JobRef, req *model.UpdateJobRequest) (string, []any, error) {
	setParts := make([]string, 0, 12)
	args := make([]any, 0, 14)
	argIdx := 1

	add := func(column string, value any) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.Company != nil {
		add("company", strings.TrimSpace(*req.Company))
	}
	if req.Position != nil {
		add("position", strings.TrimSpace(*req.Position))
	}
	if req.AppliedDate != nil {
		add("applied_date", *req.AppliedDate)
	}
	if req.Status != nil {
		add("status", *req.Status)
	}
	if req.FromURL != nil {
		add("from_url", *req.FromURL)
	}
	if req.Salary != nil {
		add("salary", *req.Salary)
	}
	if req.Location != nil {
		add("location", *req.Location)
	}
	if req.Notes != nil {
		add("notes", *req.Notes)
	}
	if req.Events != nil {
		eventsJSON, err := json.Marshal(*req.Events)
		if err != nil {
			return "", nil, fmt.Errorf("marshal events: %w", err)
		}
		setParts = append(setParts, fmt.Sprintf("events = $%d::jsonb", argIdx))
		args = append(args, eventsJSON)
		argIdx++
	}
	if req.Order != nil {
		add("sort_order", *req.Order)
	}
	if req.Column != nil {
		add("board_column", *req.Column)
	}

	if len(setParts) == 0 {
		return "", nil, apperrors.Validation("no fields to update")
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, r.timeProvider.Now().UTC())
	argIdx++

	args = append(args, ref.ID, ref.UserID)
	query := "UPDATE jobs SET " + strings.Join(setParts, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND user_id = $%d RETURNING %s", argIdx, argIdx+1, jobColumns)
	return query, args, nil
}

// Update applies a partial patch to a job and returns the updated record.
func (r *JobRepo) Update(ctx context.Context, ref core.JobRef, req *model.UpdateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, apperrors.Validation("update job request is required")
	}

	query, args, err := r.buildJobUpdateSQL(ref, req)
	if err != nil {
		return nil, err
	}
	return r.queryOne(ctx, query, args...)
}

// UpdateBoardPosition writes the (order, column) pair of one job and
// nothing else. Status never appears in this statement.
func (r *JobRepo) UpdateBoardPosition(ctx context.Context, params core.BoardPositionParams) (*model.Job, error) {
	query := `
		UPDATE jobs
		SET sort_order = $1, board_column = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
		RETURNING ` + jobColumns

	now := r.timeProvider.Now().UTC()
	return r.queryOne(ctx, query, params.Order, params.Column, now, params.Ref.ID, params.Ref.UserID)
}

// ReplaceEvents overwrites the job's timeline with the given list.
func (r *JobRepo) ReplaceEvents(ctx context.Context, ref core.JobRef, events []model.JobEvent) (*model.Job, error) {
	if events == nil {
		events = []model.JobEvent{}
	}
	eventsJSON, err := json.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("marshal events: %w", err)
	}

	query := `
		UPDATE jobs
		SET events = $1::jsonb, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING ` + jobColumns

	now := r.timeProvider.Now().UTC()
	return r.queryOne(ctx, query, eventsJSON, now, ref.ID, ref.UserID)
}

// Delete removes a job. It returns false when no row matched the reference.
func (r *JobRepo) Delete(ctx context.Context, ref core.JobRef) (bool, error) {
	var deleted bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, execErr := conn.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND user_id = $2`, ref.ID, ref.UserID)
		if execErr != nil {
			return execErr
		}
		deleted = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	return deleted, nil
}

// queryOne executes a query expected to return exactly one job row.
func (r *JobRepo) queryOne(ctx context.Context, query string, args ...any) (*model.Job, error) {
	var job model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, query, args...)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		job, queryErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return queryErr
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &job, nil
}
