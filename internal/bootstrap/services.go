package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/jobtrail/jobtrail/internal/data"
	"github.com/jobtrail/jobtrail/internal/service"
)

// ServiceContainer holds the application services.
type ServiceContainer struct {
	Jobs *service.JobService
	Auth *service.AuthService
}

// slogDebugAdapter adapts *slog.Logger to the service.DebugLogger interface.
type slogDebugAdapter struct {
	logger *slog.Logger
}

func (a slogDebugAdapter) Debug(msg string, keyvals ...any) {
	a.logger.Debug(msg, keyvals...)
}

// BuildServicesConfig groups inputs for BuildServices.
type BuildServicesConfig struct {
	DB     *sql.DB
	Auth   *service.AuthService
	Logger *slog.Logger
}

// BuildServices constructs the service container from shared resources.
func BuildServices(cfg BuildServicesConfig) ServiceContainer {
	var debugLog service.DebugLogger
	if cfg.Logger != nil {
		debugLog = slogDebugAdapter{logger: cfg.Logger}
	}

	jobs := service.NewJobService(service.JobServiceOptions{
		Jobs:   data.NewJobRepo(cfg.DB),
		Logger: debugLog,
	})

	return ServiceContainer{
		Jobs: jobs,
		Auth: cfg.Auth,
	}
}
