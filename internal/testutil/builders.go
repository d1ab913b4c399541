package testutil

import (
	"time"

	"github.com/jobtrail/jobtrail/internal/domain/model"
)

// JobRequestBuilder provides a fluent interface for building CreateJobRequest objects for testing.
type JobRequestBuilder struct {
	req *model.CreateJobRequest
}

// NewJobRequest creates a new JobRequestBuilder with sensible defaults.
func NewJobRequest() *JobRequestBuilder {
	req := &model.CreateJobRequest{
		Company:  "Acme",
		Position: "Software Engineer",
	}
	req.Normalize(time.Now())
	return &JobRequestBuilder{req: req}
}

// WithCompany sets the company name.
func (b *JobRequestBuilder) WithCompany(company string) *JobRequestBuilder {
	b.req.Company = company
	return b
}

// WithPosition sets the position title.
func (b *JobRequestBuilder) WithPosition(position string) *JobRequestBuilder {
	b.req.Position = position
	return b
}

// WithStatus sets the status and keeps the column mirroring it.
func (b *JobRequestBuilder) WithStatus(status model.JobStatus) *JobRequestBuilder {
	b.req.Status = status
	b.req.Column = string(status)
	return b
}

// WithColumn sets the board column independently of status.
func (b *JobRequestBuilder) WithColumn(column string) *JobRequestBuilder {
	b.req.Column = column
	return b
}

// WithOrder sets the card position inside its column.
func (b *JobRequestBuilder) WithOrder(order int) *JobRequestBuilder {
	b.req.Order = order
	return b
}

// WithSource sets the application origin.
func (b *JobRequestBuilder) WithSource(source model.JobSource) *JobRequestBuilder {
	b.req.Source = source
	return b
}

// WithEvents sets the initial timeline.
func (b *JobRequestBuilder) WithEvents(events ...model.JobEvent) *JobRequestBuilder {
	b.req.Events = events
	return b
}

// WithNotes sets free-form notes.
func (b *JobRequestBuilder) WithNotes(notes string) *JobRequestBuilder {
	b.req.Notes = &notes
	return b
}

// Build returns the constructed CreateJobRequest.
func (b *JobRequestBuilder) Build() *model.CreateJobRequest {
	return b.req
}
