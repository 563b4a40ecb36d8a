package jobrepo

import (
	"context"
	"errors"
	"time"

	"fieldsync/internal/core/domain/model/job"
	"fieldsync/internal/core/domain/model/kernel"
	"fieldsync/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormJobRepository implements ports.JobRepository using GORM.
type GormJobRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormJobRepository creates a new GORM job repository.
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db, now: time.Now}
}

// GetAll returns every job, newest created first. Rows whose id is not a
// well-formed job id cannot be addressed by any operation and are left out.
func (r *GormJobRepository) GetAll(ctx context.Context) ([]*job.Job, error) {
	var dtos []JobDTO
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("job_id DESC").Find(&dtos).Error; err != nil {
		return nil, storeError("get_all", err)
	}

	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		j, err := toDomain(dto)
		if err != nil {
			continue
		}
		jobs = append(jobs, j)
	}

	return jobs, nil
}

// Get retrieves a job by id.
func (r *GormJobRepository) Get(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	if err := r.db.WithContext(ctx).First(&dto, "job_id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", id.String())
		}
		return nil, storeError("get", err)
	}

	return toDomain(dto)
}

// Add saves a new job to the database.
func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return storeError("add", err)
	}
	return nil
}

// NextJobID returns the largest well-formed sequence in the store plus one.
// Duplicate ids from concurrent intakes are rejected by the primary key.
func (r *GormJobRepository) NextJobID(ctx context.Context) (kernel.JobID, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&JobDTO{}).Pluck("job_id", &ids).Error; err != nil {
		return kernel.JobID{}, storeError("next_job_id", err)
	}

	return kernel.NextJobID(ids), nil
}

// UpdateStatus rewrites status and status note and returns the updated job.
func (r *GormJobRepository) UpdateStatus(
	ctx context.Context,
	id kernel.JobID,
	status job.Status,
	note string,
) (*job.Job, error) {
	if err := r.update(ctx, id, map[string]any{
		"status":      status.String(),
		"status_note": note,
	}); err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}

// UpdateEventID links the job to eventID; an empty id clears the link.
func (r *GormJobRepository) UpdateEventID(ctx context.Context, id kernel.JobID, eventID string) error {
	return r.update(ctx, id, map[string]any{"event_id": eventID})
}

// UpdateFields applies a partial patch.
func (r *GormJobRepository) UpdateFields(ctx context.Context, id kernel.JobID, fields job.Fields) error {
	if err := fields.Validate(); err != nil {
		return err
	}

	columns := make(map[string]any, len(fields))
	for name, value := range fields {
		columns[string(name)] = value
	}
	return r.update(ctx, id, columns)
}

func (r *GormJobRepository) update(ctx context.Context, id kernel.JobID, columns map[string]any) error {
	if err := id.Validate(); err != nil {
		return err
	}

	columns["updated_at"] = r.now().UTC()
	result := r.db.WithContext(ctx).Model(&JobDTO{}).Where("job_id = ?", id.String()).Updates(columns)
	if result.Error != nil {
		return storeError("update", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("job", id.String())
	}

	return nil
}

// storeError reports a failed database round trip as an external call failure.
func storeError(op string, err error) error {
	return errs.NewExternalCallError("job_store", op, err)
}
