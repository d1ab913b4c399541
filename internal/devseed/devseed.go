// Package devseed populates a development database with sample job
// applications so the dashboard has something to render.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jobtrail/jobtrail/internal/data"
	"github.com/jobtrail/jobtrail/internal/domain/model"
	"github.com/jobtrail/jobtrail/internal/service"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB   *sql.DB
	jobs *service.JobService
}

// NewServices constructs the services required for seeding using the provided DB.
func NewServices(db *sql.DB) Services {
	jobs := service.NewJobService(service.JobServiceOptions{
		Jobs: data.NewJobRepo(db),
	})
	return Services{DB: db, jobs: jobs}
}

// DefaultUserID is the owner of seeded records. It matches the default
// dev auth identity so a mock-auth session sees the data immediately.
const DefaultUserID = "dev-user"

// Run inserts the sample jobs. Existing rows for the seed user are left
// alone; seeding is additive and safe to re-run against a reset database.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	existing, err := svcs.jobs.List(ctx, DefaultUserID)
	if err != nil {
		return fmt.Errorf("check existing seed data: %w", err)
	}
	if len(existing) > 0 {
		logger.InfoContext(ctx, "seed skipped, user already has jobs", "count", len(existing))
		return nil
	}

	seeded := 0
	for _, req := range sampleJobs() {
		req := req
		if _, createErr := svcs.jobs.Create(ctx, DefaultUserID, &req); createErr != nil {
			return fmt.Errorf("seed job %q: %w", req.Company, createErr)
		}
		seeded++
	}
	logger.InfoContext(ctx, "seeded development jobs", "count", seeded, "user_id", DefaultUserID)
	return nil
}

func sampleJobs() []model.CreateJobRequest {
	notes := "Referred by a former colleague"
	salary := "USD 140k-160k"
	location := "Remote (US)"

	return []model.CreateJobRequest{
		{
			Company:  "Globex",
			Position: "Backend Engineer",
			Status:   model.JobStatusInterview,
			Notes:    &notes,
			Events: []model.JobEvent{
				{Label: "Applied via careers page", Date: "2025-05-12T09:00:00Z", Type: model.EventTypeApplied},
				{Label: "Recruiter phone screen", Date: "2025-05-19T16:00:00Z", Type: model.EventTypeCall},
			},
		},
		{
			Company:  "Initech",
			Position: "Platform Engineer",
			Salary:   &salary,
			Location: &location,
		},
		{
			Company:  "Hooli",
			Position: "Site Reliability Engineer",
			Status:   model.JobStatusRejected,
			Events: []model.JobEvent{
				{Label: "Rejection email", Date: "2025-05-02T11:30:00Z", Type: model.EventTypeRejection},
			},
		},
		{
			Company:  "Stark Industries",
			Position: "Staff Engineer",
			Status:   model.JobStatusOffer,
			Order:    1,
		},
	}
}
