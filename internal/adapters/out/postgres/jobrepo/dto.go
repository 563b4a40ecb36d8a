// Package jobrepo persists job records with GORM. Scheduling and descriptive
// fields are stored as the raw text of the record's cells; interpretation is
// left to the domain.
package jobrepo

import (
	"time"

	"fieldsync/internal/core/domain/model/job"
	"fieldsync/internal/core/domain/model/kernel"
)

// JobDTO is the row of the jobs table. Column names match job.Field values so
// that partial patches map one to one.
type JobDTO struct {
	JobID      string `gorm:"column:job_id;primaryKey;size:32"`
	Team       string `gorm:"index"`
	Zone       string
	Date       string
	DateType   string `gorm:"column:date_type"`
	StartDate  string
	EndDate    string
	TimeWindow string
	StartTime  string
	EndTime    string
	Status     string `gorm:"index"`
	StatusNote string
	EventID    string `gorm:"column:event_id;index"`

	Customer    string
	ContactName string
	Phone       string
	Address     string
	Type        string
	Details     string
	Notes       string

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName specifies the database table name for job records.
func (JobDTO) TableName() string {
	return "jobs"
}

func fromDomain(j *job.Job) JobDTO {
	return JobDTO{
		JobID:       j.ID.String(),
		Team:        j.Team,
		Zone:        j.Zone,
		Date:        j.Date,
		DateType:    j.DateType,
		StartDate:   j.StartDate,
		EndDate:     j.EndDate,
		TimeWindow:  j.TimeWindow.String(),
		StartTime:   j.StartTime,
		EndTime:     j.EndTime,
		Status:      j.Status.String(),
		StatusNote:  j.StatusNote,
		EventID:     j.EventID,
		Customer:    j.Customer,
		ContactName: j.ContactName,
		Phone:       j.Phone,
		Address:     j.Address,
		Type:        j.Type,
		Details:     j.Details,
		Notes:       j.Notes,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.ParseJobID(dto.JobID)
	if err != nil {
		return nil, err
	}

	return &job.Job{
		ID:          id,
		Team:        dto.Team,
		Zone:        dto.Zone,
		Date:        dto.Date,
		DateType:    dto.DateType,
		StartDate:   dto.StartDate,
		EndDate:     dto.EndDate,
		TimeWindow:  job.ParseTimeWindow(dto.TimeWindow),
		StartTime:   dto.StartTime,
		EndTime:     dto.EndTime,
		Status:      job.Status(dto.Status),
		StatusNote:  dto.StatusNote,
		EventID:     dto.EventID,
		Customer:    dto.Customer,
		ContactName: dto.ContactName,
		Phone:       dto.Phone,
		Address:     dto.Address,
		Type:        dto.Type,
		Details:     dto.Details,
		Notes:       dto.Notes,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	}, nil
}
