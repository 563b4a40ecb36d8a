package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"fieldsync/internal/core/application/usecases/commands"
	"fieldsync/internal/core/application/usecases/queries"
	"fieldsync/internal/core/domain/model/job"
	"fieldsync/internal/core/domain/model/kernel"
	"fieldsync/internal/jobs"

	"github.com/labstack/echo/v4"
)

type (
	JobCreator interface {
		Handle(ctx context.Context, cmd commands.CreateJobCommand) (commands.CreateJobResult, error)
	}
	JobSyncer interface {
		Handle(ctx context.Context, cmd commands.SyncJobCommand) (commands.SyncResult, error)
	}
	JobEventDeleter interface {
		Handle(ctx context.Context, cmd commands.DeleteJobEventCommand) (commands.DeleteJobEventResult, error)
	}
	JobDriftChecker interface {
		Handle(ctx context.Context, cmd commands.CheckJobDriftCommand) (commands.DriftDetail, error)
	}
	JobResyncer interface {
		Handle(ctx context.Context, cmd commands.ResyncJobsCommand) (commands.ResyncSummary, error)
	}
	ColumnRepairer interface {
		Handle(ctx context.Context, cmd commands.RepairJobColumnsCommand) (commands.ColumnRepairSummary, error)
	}
	MonitoredJobsReader interface {
		Handle(ctx context.Context, query queries.GetMonitoredJobsQuery) ([]queries.GetMonitoredJobsQueryResponse, error)
	}
	// Reconciler controls the reconciliation scheduler.
	Reconciler interface {
		StartReconciliation() error
		StopReconciliation() error
		RunReconciliation(ctx context.Context) (commands.DriftScanSummary, error)
		ReconciliationStatus() jobs.ReconciliationStatus
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateJob      JobCreator
	SyncJob        JobSyncer
	DeleteJobEvent JobEventDeleter
	CheckJobDrift  JobDriftChecker
	ResyncJobs     JobResyncer
	RepairColumns  ColumnRepairer
	MonitoredJobs  MonitoredJobsReader
	Reconciler     Reconciler
}

// Server exposes the admin API of the reconciliation service.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewServer creates a new HTTP server over the given use cases.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/jobs", s.CreateJob)
	v1.GET("/jobs/monitored", s.GetMonitoredJobs)
	v1.POST("/jobs/resync", s.ResyncJobs)
	v1.POST("/jobs/repair-columns", s.RepairColumns)
	v1.POST("/jobs/:id/sync", s.SyncJob)
	v1.DELETE("/jobs/:id/event", s.DeleteJobEvent)
	v1.POST("/jobs/:id/drift-check", s.CheckJobDrift)

	v1.POST("/reconciliation/run", s.RunReconciliation)
	v1.GET("/reconciliation/status", s.GetReconciliationStatus)
	v1.POST("/reconciliation/start", s.StartReconciliation)
	v1.POST("/reconciliation/stop", s.StopReconciliation)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateJob handles POST /api/v1/jobs - stores a new job and syncs it when calendar-bound.
func (s *Server) CreateJob(ctx echo.Context) error {
	var body map[string]string
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid request body", err)
	}

	fields := make(job.Fields, len(body))
	for name, value := range body {
		fields[job.Field(name)] = value
	}

	cmd, err := commands.NewCreateJobCommand(fields)
	if err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid job data", err)
	}

	result, err := s.handlers.CreateJob.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, statusFor(err), "Failed to create job", err)
	}

	response := CreateJobResponse{JobID: result.JobID.String(), Status: string(result.Status)}
	if result.Sync != nil {
		synced := toSyncResponse(*result.Sync)
		response.Sync = &synced
	}
	if result.SyncErr != nil {
		response.SyncError = &Error{Code: statusFor(result.SyncErr), Message: result.SyncErr.Error()}
	}
	return ctx.JSON(http.StatusCreated, response)
}

// SyncJob handles POST /api/v1/jobs/:id/sync - pushes a stored job to its queue calendar.
func (s *Server) SyncJob(ctx echo.Context) error {
	id, err := kernel.ParseJobID(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid job id", err)
	}

	cmd, err := commands.NewSyncStoredJobCommand(id)
	if err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid job id", err)
	}

	result, err := s.handlers.SyncJob.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, statusFor(err), "Failed to sync job", err)
	}
	return ctx.JSON(http.StatusOK, toSyncResponse(result))
}

// DeleteJobEvent handles DELETE /api/v1/jobs/:id/event - removes the job's calendar events.
func (s *Server) DeleteJobEvent(ctx echo.Context) error {
	id, err := kernel.ParseJobID(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid job id", err)
	}

	cmd, err := commands.NewDeleteJobEventCommand(id)
	if err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid job id", err)
	}

	result, err := s.handlers.DeleteJobEvent.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, statusFor(err), "Failed to delete job event", err)
	}
	return ctx.JSON(http.StatusOK, DeleteJobEventResponse{JobID: result.JobID, Deleted: nonNil(result.Deleted)})
}

// CheckJobDrift handles POST /api/v1/jobs/:id/drift-check - inspects one job.
func (s *Server) CheckJobDrift(ctx echo.Context) error {
	id, err := kernel.ParseJobID(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid job id", err)
	}

	cmd, err := commands.NewCheckJobDriftCommand(id)
	if err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid job id", err)
	}

	detail, err := s.handlers.CheckJobDrift.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, statusFor(err), "Failed to check job drift", err)
	}
	return ctx.JSON(http.StatusOK, toDriftDetailResponse(detail))
}

// GetMonitoredJobs handles GET /api/v1/jobs/monitored.
func (s *Server) GetMonitoredJobs(ctx echo.Context) error {
	monitored, err := s.handlers.MonitoredJobs.Handle(ctx.Request().Context(), queries.NewGetMonitoredJobsQuery())
	if err != nil {
		return s.fail(ctx, http.StatusInternalServerError, "Failed to retrieve monitored jobs", err)
	}
	return ctx.JSON(http.StatusOK, monitored)
}

// ResyncJobs handles POST /api/v1/jobs/resync - resyncs every calendar-bound job.
func (s *Server) ResyncJobs(ctx echo.Context) error {
	summary, err := s.handlers.ResyncJobs.Handle(batchContext(ctx), commands.NewResyncJobsCommand())
	if err != nil {
		return s.fail(ctx, statusFor(err), "Failed to resync jobs", err)
	}
	return ctx.JSON(http.StatusOK, toResyncResponse(summary))
}

// RepairColumns handles POST /api/v1/jobs/repair-columns[?dry_run=true].
func (s *Server) RepairColumns(ctx echo.Context) error {
	dryRun := ctx.QueryParam("dry_run") == "true"

	summary, err := s.handlers.RepairColumns.Handle(
		batchContext(ctx),
		commands.NewRepairJobColumnsCommand(dryRun),
	)
	if err != nil {
		return s.fail(ctx, statusFor(err), "Failed to repair job columns", err)
	}
	return ctx.JSON(http.StatusOK, toColumnRepairResponse(summary))
}

// RunReconciliation handles POST /api/v1/reconciliation/run - runs a drift scan now.
func (s *Server) RunReconciliation(ctx echo.Context) error {
	summary, err := s.handlers.Reconciler.RunReconciliation(batchContext(ctx))
	if err != nil {
		if errors.Is(err, jobs.ErrRunInProgress) {
			return s.fail(ctx, http.StatusConflict, "Reconciliation already running", err)
		}
		return s.fail(ctx, statusFor(err), "Reconciliation run failed", err)
	}
	return ctx.JSON(http.StatusOK, toDriftScanResponse(summary))
}

// GetReconciliationStatus handles GET /api/v1/reconciliation/status.
func (s *Server) GetReconciliationStatus(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.handlers.Reconciler.ReconciliationStatus())
}

// StartReconciliation handles POST /api/v1/reconciliation/start.
func (s *Server) StartReconciliation(ctx echo.Context) error {
	if err := s.handlers.Reconciler.StartReconciliation(); err != nil {
		return s.fail(ctx, http.StatusInternalServerError, "Failed to start reconciliation", err)
	}
	return ctx.JSON(http.StatusOK, s.handlers.Reconciler.ReconciliationStatus())
}

// StopReconciliation handles POST /api/v1/reconciliation/stop.
func (s *Server) StopReconciliation(ctx echo.Context) error {
	if err := s.handlers.Reconciler.StopReconciliation(); err != nil {
		return s.fail(ctx, http.StatusInternalServerError, "Failed to stop reconciliation", err)
	}
	return ctx.JSON(http.StatusOK, s.handlers.Reconciler.ReconciliationStatus())
}

// batchContext detaches batch passes from the request so a client disconnect
// does not cut a pass short.
func batchContext(ctx echo.Context) context.Context {
	return context.WithoutCancel(ctx.Request().Context())
}

func (s *Server) fail(ctx echo.Context, code int, message string, err error) error {
	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), message,
			"path", ctx.Path(),
			"error", err,
		)
	}
	return ctx.JSON(code, Error{Code: code, Message: message + ": " + err.Error()})
}
