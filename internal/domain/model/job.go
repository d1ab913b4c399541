// Package model defines the core data types for the jobtrail application tracker.
package model

import (
	"strings"
	"time"

	apperrors "github.com/jobtrail/jobtrail/internal/errors"
)

// JobStatus represents where an application stands in the pipeline.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type JobStatus string

// JobSource records how an application entered the system.
type JobSource string

// EventType classifies a timeline entry on a job.
type EventType string

const (
	// JobStatusApplied is the initial status of every application.
	JobStatusApplied JobStatus = "applied"
	// JobStatusInterview indicates the application reached an interview stage.
	JobStatusInterview JobStatus = "interview"
	// JobStatusOffer indicates an offer was extended.
	JobStatusOffer JobStatus = "offer"
	// JobStatusRejected indicates the application was declined.
	JobStatusRejected JobStatus = "rejected"
	// JobStatusPending indicates the application is on hold or awaiting a response.
	JobStatusPending JobStatus = "pending"

	// JobSourceManual marks applications entered through the dashboard form.
	JobSourceManual JobSource = "manual"
	// JobSourceExtension marks applications captured by the browser extension.
	JobSourceExtension JobSource = "extension"
)

const (
	EventTypeApplied   EventType = "applied"
	EventTypeInterview EventType = "interview"
	EventTypeEmail     EventType = "email"
	EventTypeCall      EventType = "call"
	EventTypeOffer     EventType = "offer"
	EventTypeRejection EventType = "rejection"
	EventTypeOther     EventType = "other"
)

// Valid returns true if the JobStatus is one of the known pipeline stages.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusApplied, JobStatusInterview, JobStatusOffer, JobStatusRejected, JobStatusPending:
		return true
	default:
		return false
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for JobStatus.
func (s *JobStatus) UnmarshalText(text []byte) error {
	v := JobStatus(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return apperrors.Validationf("invalid status: %q", string(text))
	}
	*s = v
	return nil
}

// Valid returns true if the JobSource is a known origin.
func (s JobSource) Valid() bool {
	return s == JobSourceManual || s == JobSourceExtension
}

// Valid returns true if the EventType is a known timeline entry kind.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeApplied, EventTypeInterview, EventTypeEmail, EventTypeCall,
		EventTypeOffer, EventTypeRejection, EventTypeOther:
		return true
	default:
		return false
	}
}

// JobEvent is one timeline entry attached to a Job. Events are owned
// exclusively by their parent job and are never addressable on their own.
type JobEvent struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Date  string    `json:"date"`
	Type  EventType `json:"type"`
	Notes string    `json:"notes,omitempty"`
}

// Validate checks the required event fields.
func (e JobEvent) Validate() error {
	if strings.TrimSpace(e.Label) == "" {
		return apperrors.ValidationField("label", "event label is required")
	}
	if strings.TrimSpace(e.Date) == "" {
		return apperrors.ValidationField("date", "event date is required")
	}
	if !e.Type.Valid() {
		return apperrors.ValidationField("type", "invalid event type: "+string(e.Type))
	}
	return nil
}

// Job represents one application submitted by one user to one employer.
//
// Column and Status are deliberately decoupled: a card can be dragged into
// the "interview" board column while its status still reads "applied".
// Positional moves write only Order/Column and never touch Status.
type Job struct {
	ID          string     `json:"id"                 db:"id"`
	Company     string     `json:"company"            db:"company"`
	Position    string     `json:"position"           db:"position"`
	AppliedDate string     `json:"appliedDate"        db:"applied_date"`
	Status      JobStatus  `json:"status"             db:"status"`
	Source      JobSource  `json:"source"             db:"source"`
	FromURL     *string    `json:"fromUrl,omitempty"  db:"from_url"`
	Salary      *string    `json:"salary,omitempty"   db:"salary"`
	Location    *string    `json:"location,omitempty" db:"location"`
	Notes       *string    `json:"notes,omitempty"    db:"notes"`
	Events      []JobEvent `json:"events"             db:"events"`
	UserID      string     `json:"userId"             db:"user_id"`
	Order       int        `json:"order"              db:"sort_order"`
	Column      string     `json:"column"             db:"board_column"`
	CreatedAt   time.Time  `json:"createdAt"          db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt"          db:"updated_at"`
}

// AppendEvent validates ev and appends it to the job's timeline.
// Entry order is insertion order; events are never re-sorted by date.
// On validation failure the events list is left unmodified.
func (j *Job) AppendEvent(ev JobEvent) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	j.Events = append(j.Events, ev)
	return nil
}

// CreateJobRequest represents a candidate job record before persistence.
// UserID is intentionally absent: ownership comes from the authenticated
// principal, never from client input.
type CreateJobRequest struct {
	Company     string     `json:"company"`
	Position    string     `json:"position"`
	AppliedDate string     `json:"appliedDate,omitempty"`
	Status      JobStatus  `json:"status,omitempty"`
	Source      JobSource  `json:"source,omitempty"`
	FromURL     *string    `json:"fromUrl,omitempty"`
	Salary      *string    `json:"salary,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	Events      []JobEvent `json:"events,omitempty"`
	Order       int        `json:"order,omitempty"`
	Column      string     `json:"column,omitempty"`
}

// Normalize fills defaults for fields the client may omit: status=applied,
// source=manual, column mirrors the resolved status, events=[], and
// appliedDate falls back to now.
func (r *CreateJobRequest) Normalize(now time.Time) {
	r.Company = strings.TrimSpace(r.Company)
	r.Position = strings.TrimSpace(r.Position)
	if r.Status == "" {
		r.Status = JobStatusApplied
	}
	if r.Source == "" {
		r.Source = JobSourceManual
	}
	if r.Column == "" {
		r.Column = string(r.Status)
	}
	if r.AppliedDate == "" {
		r.AppliedDate = now.UTC().Format(time.RFC3339)
	}
	if r.Events == nil {
		r.Events = []JobEvent{}
	}
}

// Validate validates the CreateJobRequest fields. Call Normalize first.
func (r *CreateJobRequest) Validate() error {
	if strings.TrimSpace(r.Company) == "" {
		return apperrors.ValidationField("company", "company is required")
	}
	if strings.TrimSpace(r.Position) == "" {
		return apperrors.ValidationField("position", "position is required")
	}
	if !r.Status.Valid() {
		return apperrors.ValidationField("status", "invalid status: "+string(r.Status))
	}
	if !r.Source.Valid() {
		return apperrors.ValidationField("source", "invalid source: "+string(r.Source))
	}
	if r.Order < 0 {
		return apperrors.ValidationField("order", "order must be >= 0")
	}
	for _, ev := range r.Events {
		if err := ev.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// UpdateJobRequest represents a partial update to a Job. Nil fields are
// left untouched; a non-nil pointer to an empty value sets that literal
// value (it is not treated as "unset"). Known limitation: a JSON null
// decodes to a nil pointer and is therefore indistinguishable from an
// absent field — clients clear a field by sending the empty value
// ("" / [] / 0), not null.
//
// ID, UserID, Source, and the store-managed timestamps are accepted on
// the wire (clients echo back full job objects) but ignored on apply:
// identity, ownership, and origin are fixed at creation.
type UpdateJobRequest struct {
	Company     *string     `json:"company,omitempty"`
	Position    *string     `json:"position,omitempty"`
	AppliedDate *string     `json:"appliedDate,omitempty"`
	Status      *JobStatus  `json:"status,omitempty"`
	FromURL     *string     `json:"fromUrl,omitempty"`
	Salary      *string     `json:"salary,omitempty"`
	Location    *string     `json:"location,omitempty"`
	Notes       *string     `json:"notes,omitempty"`
	Events      *[]JobEvent `json:"events,omitempty"`
	Order       *int        `json:"order,omitempty"`
	Column      *string     `json:"column,omitempty"`

	// Ignored on apply.
	ID        *string    `json:"id,omitempty"`
	UserID    *string    `json:"userId,omitempty"`
	Source    *JobSource `json:"source,omitempty"`
	CreatedAt *string    `json:"createdAt,omitempty"`
	UpdatedAt *string    `json:"updatedAt,omitempty"`
}

// HasUpdates reports whether any applicable field is set.
func (r *UpdateJobRequest) HasUpdates() bool {
	return r.Company != nil || r.Position != nil || r.AppliedDate != nil ||
		r.Status != nil || r.FromURL != nil || r.Salary != nil ||
		r.Location != nil || r.Notes != nil || r.Events != nil ||
		r.Order != nil || r.Column != nil
}

// Validate validates the fields present in the patch under the same rules
// as creation.
func (r *UpdateJobRequest) Validate() error {
	if !r.HasUpdates() {
		return apperrors.Validation("at least one field must be updated")
	}
	if r.Company != nil && strings.TrimSpace(*r.Company) == "" {
		return apperrors.ValidationField("company", "company cannot be empty")
	}
	if r.Position != nil && strings.TrimSpace(*r.Position) == "" {
		return apperrors.ValidationField("position", "position cannot be empty")
	}
	if r.Status != nil && !r.Status.Valid() {
		return apperrors.ValidationField("status", "invalid status: "+string(*r.Status))
	}
	if r.AppliedDate != nil && strings.TrimSpace(*r.AppliedDate) == "" {
		return apperrors.ValidationField("appliedDate", "appliedDate cannot be empty")
	}
	if r.Order != nil && *r.Order < 0 {
		return apperrors.ValidationField("order", "order must be >= 0")
	}
	if r.Events != nil {
		for _, ev := range *r.Events {
			if err := ev.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// ApplyTo merges the patch onto an existing job, field by field.
// Ownership and identity fields are never applied.
func (r *UpdateJobRequest) ApplyTo(j *Job) {
	if r.Company != nil {
		j.Company = strings.TrimSpace(*r.Company)
	}
	if r.Position != nil {
		j.Position = strings.TrimSpace(*r.Position)
	}
	if r.AppliedDate != nil {
		j.AppliedDate = *r.AppliedDate
	}
	if r.Status != nil {
		j.Status = *r.Status
	}
	if r.FromURL != nil {
		j.FromURL = r.FromURL
	}
	if r.Salary != nil {
		j.Salary = r.Salary
	}
	if r.Location != nil {
		j.Location = r.Location
	}
	if r.Notes != nil {
		j.Notes = r.Notes
	}
	if r.Events != nil {
		j.Events = *r.Events
	}
	if r.Order != nil {
		j.Order = *r.Order
	}
	if r.Column != nil {
		j.Column = *r.Column
	}
}
