package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobtrail/jobtrail/internal/core"
	domainauth "github.com/jobtrail/jobtrail/internal/domain/auth"
	"github.com/jobtrail/jobtrail/internal/domain/board"
	"github.com/jobtrail/jobtrail/internal/domain/model"
	apperrors "github.com/jobtrail/jobtrail/internal/errors"
	"github.com/jobtrail/jobtrail/internal/mocks"
	"github.com/jobtrail/jobtrail/internal/service"
)

const testUser = "user-1"

func newTestHandlers(t *testing.T) (*JobHandlers, *mocks.MockJobRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	repo := mocks.NewMockJobRepository(ctrl)
	svc := service.NewJobService(service.JobServiceOptions{Jobs: repo})
	return &JobHandlers{Svc: svc}, repo
}

// authedRequest builds a request carrying an authenticated principal, the
// way RequireAuth leaves it for handlers.
func authedRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := SetPrincipalInContext(r.Context(), domainauth.Principal{UserID: testUser})
	return r.WithContext(ctx)
}

func TestListJobs(t *testing.T) {
	h, repo := newTestHandlers(t)
	repo.EXPECT().ListByUser(gomock.Any(), testUser).Return([]*model.Job{
		{ID: "J1", Status: model.JobStatusApplied},
		{ID: "J2", Status: model.JobStatusInterview},
	}, nil)

	w := httptest.NewRecorder()
	h.ListJobs(w, authedRequest(http.MethodGet, "/api/jobs", ""))

	require.Equal(t, http.StatusOK, w.Code)
	var jobs []model.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &jobs))
	assert.Len(t, jobs, 2)
}

func TestListJobs_EmptyIsArray(t *testing.T) {
	h, repo := newTestHandlers(t)
	repo.EXPECT().ListByUser(gomock.Any(), testUser).Return(nil, nil)

	w := httptest.NewRecorder()
	h.ListJobs(w, authedRequest(http.MethodGet, "/api/jobs", ""))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestListJobs_NoPrincipal(t *testing.T) {
	h, _ := newTestHandlers(t)

	w := httptest.NewRecorder()
	h.ListJobs(w, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateJob(t *testing.T) {
	h, repo := newTestHandlers(t)
	repo.EXPECT().
		Create(gomock.Any(), testUser, gomock.Any()).
		DoAndReturn(func(_ context.Context, uid string, req *model.CreateJobRequest) (*model.Job, error) {
			return &model.Job{ID: "J1", UserID: uid, Company: req.Company, Status: req.Status, Column: req.Column}, nil
		})

	body := `{"company":"Acme","position":"Engineer"}`
	w := httptest.NewRecorder()
	h.CreateJob(w, authedRequest(http.MethodPost, "/api/jobs", body))

	require.Equal(t, http.StatusCreated, w.Code)
	var job model.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	assert.Equal(t, "Acme", job.Company)
	assert.Equal(t, model.JobStatusApplied, job.Status)
	assert.Equal(t, "applied", job.Column)
	assert.Equal(t, testUser, job.UserID)
}

func TestCreateJob_ValidationError(t *testing.T) {
	h, _ := newTestHandlers(t)

	w := httptest.NewRecorder()
	h.CreateJob(w, authedRequest(http.MethodPost, "/api/jobs", `{"company":"  "}`))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation")
}

func TestCreateJob_UnknownFieldRejected(t *testing.T) {
	h, _ := newTestHandlers(t)

	w := httptest.NewRecorder()
	h.CreateJob(w, authedRequest(http.MethodPost, "/api/jobs", `{"company":"Acme","position":"E","bogus":1}`))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_json")
}

func TestGetJob_NotFound(t *testing.T) {
	h, repo := newTestHandlers(t)
	repo.EXPECT().
		GetByID(gomock.Any(), core.JobRef{UserID: testUser, ID: "missing"}).
		Return(nil, apperrors.NotFound("job not found"))

	r := authedRequest(http.MethodGet, "/api/jobs/missing", "")
	r.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	h.GetJob(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateJob(t *testing.T) {
	h, repo := newTestHandlers(t)
	ref := core.JobRef{UserID: testUser, ID: "J1"}
	repo.EXPECT().
		Update(gomock.Any(), ref, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ core.JobRef, req *model.UpdateJobRequest) (*model.Job, error) {
			require.NotNil(t, req.Status)
			// Status patches leave the column alone.
			return &model.Job{ID: "J1", Status: *req.Status, Column: "applied"}, nil
		})

	r := authedRequest(http.MethodPut, "/api/jobs/J1", `{"status":"interview"}`)
	r.SetPathValue("id", "J1")
	w := httptest.NewRecorder()
	h.UpdateJob(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var job model.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	assert.Equal(t, model.JobStatusInterview, job.Status)
	assert.Equal(t, "applied", job.Column)
}

func TestUpdateJob_IdentityEchoAccepted(t *testing.T) {
	h, repo := newTestHandlers(t)
	ref := core.JobRef{UserID: testUser, ID: "J1"}
	repo.EXPECT().
		Update(gomock.Any(), ref, gomock.Any()).
		Return(&model.Job{ID: "J1", UserID: testUser, Company: "NewCo"}, nil)

	// Clients may echo back full objects including id and userId.
	body := `{"id":"J1","userId":"attacker","company":"NewCo"}`
	r := authedRequest(http.MethodPut, "/api/jobs/J1", body)
	r.SetPathValue("id", "J1")
	w := httptest.NewRecorder()
	h.UpdateJob(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteJob(t *testing.T) {
	h, repo := newTestHandlers(t)
	ref := core.JobRef{UserID: testUser, ID: "J1"}
	repo.EXPECT().Delete(gomock.Any(), ref).Return(true, nil)

	r := authedRequest(http.MethodDelete, "/api/jobs/J1", "")
	r.SetPathValue("id", "J1")
	w := httptest.NewRecorder()
	h.DeleteJob(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deleted")
}

func TestDeleteJob_MissingRowIs404(t *testing.T) {
	h, repo := newTestHandlers(t)
	ref := core.JobRef{UserID: testUser, ID: "J1"}
	repo.EXPECT().Delete(gomock.Any(), ref).Return(false, nil)

	r := authedRequest(http.MethodDelete, "/api/jobs/J1", "")
	r.SetPathValue("id", "J1")
	w := httptest.NewRecorder()
	h.DeleteJob(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMoveJob(t *testing.T) {
	h, repo := newTestHandlers(t)
	ref := core.JobRef{UserID: testUser, ID: "J1"}
	repo.EXPECT().
		GetByID(gomock.Any(), ref).
		Return(&model.Job{ID: "J1", Status: model.JobStatusApplied, Column: "applied", Order: 0}, nil)
	repo.EXPECT().
		UpdateBoardPosition(gomock.Any(), core.BoardPositionParams{Ref: ref, Column: "interview", Order: 1}).
		Return(&model.Job{ID: "J1", Status: model.JobStatusApplied, Column: "interview", Order: 1}, nil)

	r := authedRequest(http.MethodPost, "/api/jobs/J1/move", `{"column":"interview","index":1}`)
	r.SetPathValue("id", "J1")
	w := httptest.NewRecorder()
	h.MoveJob(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var job model.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	assert.Equal(t, "interview", job.Column)
	assert.Equal(t, model.JobStatusApplied, job.Status)
}

func TestMoveJob_NegativeIndexRejected(t *testing.T) {
	h, repo := newTestHandlers(t)
	ref := core.JobRef{UserID: testUser, ID: "J1"}
	repo.EXPECT().GetByID(gomock.Any(), ref).Return(&model.Job{ID: "J1", Column: "applied"}, nil)

	r := authedRequest(http.MethodPost, "/api/jobs/J1/move", `{"column":"applied","index":-1}`)
	r.SetPathValue("id", "J1")
	w := httptest.NewRecorder()
	h.MoveJob(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAppendJobEvent(t *testing.T) {
	h, repo := newTestHandlers(t)
	ref := core.JobRef{UserID: testUser, ID: "J1"}
	repo.EXPECT().GetByID(gomock.Any(), ref).Return(&model.Job{ID: "J1", Status: model.JobStatusApplied}, nil)
	repo.EXPECT().
		ReplaceEvents(gomock.Any(), ref, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ core.JobRef, events []model.JobEvent) (*model.Job, error) {
			return &model.Job{ID: "J1", Status: model.JobStatusApplied, Events: events}, nil
		})

	body := `{"label":"Phone screen","date":"2025-06-02T10:00:00Z","type":"call"}`
	r := authedRequest(http.MethodPost, "/api/jobs/J1/events", body)
	r.SetPathValue("id", "J1")
	w := httptest.NewRecorder()
	h.AppendJobEvent(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	var job model.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	require.Len(t, job.Events, 1)
	assert.NotEmpty(t, job.Events[0].ID)
}

func TestAppendJobEvent_BadType(t *testing.T) {
	h, repo := newTestHandlers(t)
	ref := core.JobRef{UserID: testUser, ID: "J1"}
	repo.EXPECT().GetByID(gomock.Any(), ref).Return(&model.Job{ID: "J1"}, nil)

	body := `{"label":"x","date":"2025-06-02T10:00:00Z","type":"telegram"}`
	r := authedRequest(http.MethodPost, "/api/jobs/J1/events", body)
	r.SetPathValue("id", "J1")
	w := httptest.NewRecorder()
	h.AppendJobEvent(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBoard(t *testing.T) {
	h, repo := newTestHandlers(t)
	repo.EXPECT().ListByUser(gomock.Any(), testUser).Return([]*model.Job{
		{ID: "J1", Status: model.JobStatusApplied, Column: "applied", Order: 1},
		{ID: "J2", Status: model.JobStatusApplied, Column: "applied", Order: 0},
	}, nil)

	w := httptest.NewRecorder()
	h.Board(w, authedRequest(http.MethodGet, "/api/board", ""))

	require.Equal(t, http.StatusOK, w.Code)
	var view board.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Len(t, view.Columns, len(board.CanonicalColumns))
	require.Len(t, view.Columns[0].Jobs, 2)
	assert.Equal(t, "J2", view.Columns[0].Jobs[0].ID)
}
