package httpx

import (
	"log/slog"
	"net/http"

	"github.com/jobtrail/jobtrail/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Jobs        *service.JobService
	Auth        *service.AuthService
	CORSOrigins []string
	Logger      *slog.Logger // optional, defaults to slog.Default
}

// NewRouter creates and configures the HTTP router. All /api routes sit
// behind bearer authentication; health stays open for probes.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	jobHandlers := &JobHandlers{Svc: services.Jobs}
	registerJobRoutes(mux, jobHandlers, services.Auth)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	var handler http.Handler = mux
	handler = CORS(services.CORSOrigins)(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

// registerJobRoutes wires the job API endpoints behind auth middleware.
func registerJobRoutes(mux *http.ServeMux, h *JobHandlers, auth Authenticator) {
	requireAuth := RequireAuth(auth)
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, requireAuth(fn))
	}

	handle("GET /api/jobs", h.ListJobs)
	handle("POST /api/jobs", h.CreateJob)
	handle("GET /api/jobs/{id}", h.GetJob)
	handle("PUT /api/jobs/{id}", h.UpdateJob)
	handle("DELETE /api/jobs/{id}", h.DeleteJob)
	handle("POST /api/jobs/{id}/move", h.MoveJob)
	handle("POST /api/jobs/{id}/events", h.AppendJobEvent)
	handle("GET /api/board", h.Board)
}
