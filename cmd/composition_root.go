package cmd

import (
	"fmt"
	"log/slog"

	httpadapter "fieldsync/internal/adapters/in/http"
	"fieldsync/internal/adapters/out/postgres"
	"fieldsync/internal/adapters/out/postgres/jobrepo"
	"fieldsync/internal/core/application/usecases/commands"
	"fieldsync/internal/core/application/usecases/queries"
	"fieldsync/internal/core/domain/model/calendar"
	"fieldsync/internal/core/domain/services"
	"fieldsync/internal/core/ports"
	"fieldsync/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot builds every adapter once and injects it into the use cases.
type CompositionRoot struct {
	configs    Config
	rules      Rules
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	jobRepo    ports.JobRepository
	calendars  ports.CalendarService
	router     services.QueueRouter
	personal   *calendar.PersonalMatcher
	logger     *slog.Logger
}

func NewCompositionRoot(
	configs Config,
	rules Rules,
	gormDB *gorm.DB,
	calendars ports.CalendarService,
	logger *slog.Logger,
) (CompositionRoot, error) {
	personal, err := calendar.NewPersonalMatcher(rules.PersonalCalendarPatterns)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		configs:    configs,
		rules:      rules,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		jobRepo:    jobrepo.NewGormJobRepository(gormDB),
		calendars:  calendars,
		router: services.NewQueueRouter(
			services.NewTeamNormalizer(rules.TeamRules()),
			calendar.NewRegistry(rules.TeamCalendars()),
		),
		personal: personal,
		logger:   logger,
	}, nil
}

func (c *CompositionRoot) syncRules() commands.SyncRules {
	return commands.SyncRules{
		Router:       c.router,
		Policy:       services.NewSchedulePolicy(),
		Composer:     services.NewEventComposer(c.configs.Location),
		MaxRangeDays: c.configs.MaxRangeDays,
	}
}

func (c *CompositionRoot) CreateSyncJobCommandHandler() commands.SyncJobCommandHandler {
	return commands.NewSyncJobCommandHandler(c.jobRepo, c.calendars, c.syncRules(), c.logger)
}

func (c *CompositionRoot) CreateCreateJobCommandHandler() commands.CreateJobCommandHandler {
	var f commands.JobUoWFactory = FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateJobCommandHandler(f, c.CreateSyncJobCommandHandler(), c.syncRules(), c.logger)
}

func (c *CompositionRoot) CreateDeleteJobEventCommandHandler() commands.DeleteJobEventCommandHandler {
	return commands.NewDeleteJobEventCommandHandler(c.jobRepo, c.calendars, c.router, c.logger)
}

func (c *CompositionRoot) CreateRunDriftScanCommandHandler() commands.RunDriftScanCommandHandler {
	return commands.NewRunDriftScanCommandHandler(c.jobRepo, c.calendars, c.driftSettings(), c.logger)
}

func (c *CompositionRoot) CreateCheckJobDriftCommandHandler() commands.CheckJobDriftCommandHandler {
	return commands.NewCheckJobDriftCommandHandler(c.jobRepo, c.calendars, c.driftSettings(), c.logger)
}

func (c *CompositionRoot) CreateResyncJobsCommandHandler() commands.ResyncJobsCommandHandler {
	return commands.NewResyncJobsCommandHandler(
		c.jobRepo,
		c.CreateSyncJobCommandHandler(),
		c.configs.ScanDelay,
		c.logger,
	)
}

func (c *CompositionRoot) CreateRepairJobColumnsCommandHandler() commands.RepairJobColumnsCommandHandler {
	detector := services.NewColumnSwapDetector(c.rules.StatusLiterals, c.rules.PlaceNames)
	return commands.NewRepairJobColumnsCommandHandler(c.jobRepo, detector, c.logger)
}

func (c *CompositionRoot) CreateGetMonitoredJobsQueryHandler() queries.GetMonitoredJobsQueryHandler {
	return queries.NewGetMonitoredJobsQueryHandler(c.gormDB)
}

// CreateJobManager wires the reconciliation job and, when configured, the
// nightly column repair.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	reconciliation, err := jobs.NewReconciliationJob(
		c.CreateRunDriftScanCommandHandler(),
		c.configs.ReconcileAt,
		c.configs.Location,
		c.logger,
	)
	if err != nil {
		return nil, fmt.Errorf("reconciliation job: %w", err)
	}

	var columnRepair *jobs.ColumnRepairJob
	if c.configs.ColumnRepairAt != nil {
		columnRepair, err = jobs.NewColumnRepairJob(
			c.CreateRepairJobColumnsCommandHandler(),
			*c.configs.ColumnRepairAt,
			c.configs.Location,
			c.logger,
		)
		if err != nil {
			return nil, fmt.Errorf("column repair job: %w", err)
		}
	}

	return jobs.NewJobManager(reconciliation, columnRepair), nil
}

func (c *CompositionRoot) CreateHTTPServer(jobManager *jobs.JobManager) *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateJob:      c.CreateCreateJobCommandHandler(),
		SyncJob:        c.CreateSyncJobCommandHandler(),
		DeleteJobEvent: c.CreateDeleteJobEventCommandHandler(),
		CheckJobDrift:  c.CreateCheckJobDriftCommandHandler(),
		ResyncJobs:     c.CreateResyncJobsCommandHandler(),
		RepairColumns:  c.CreateRepairJobColumnsCommandHandler(),
		MonitoredJobs:  c.CreateGetMonitoredJobsQueryHandler(),
		Reconciler:     jobManager,
	}, c.logger)
}

func (c *CompositionRoot) driftSettings() commands.DriftSettings {
	return commands.DriftSettings{
		Router:   c.router,
		Personal: c.personal,
		Delay:    c.configs.ScanDelay,
	}
}

// Migrate creates or updates the job store schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&jobrepo.JobDTO{})
}

type FuncJobUoWFactory func() commands.JobUoW

func (f FuncJobUoWFactory) Create() commands.JobUoW {
	return f()
}
