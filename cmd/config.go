package cmd

import (
	"time"

	"fieldsync/internal/core/domain/model/kernel"
)

type Config struct {
	HTTPPort              string
	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	DBSslMode             string
	GoogleCredentialsFile string
	RulesFile             string

	Location *time.Location
	// ReconcileAt is the daily fire time of the drift scan.
	ReconcileAt kernel.TimeOfDay
	// ColumnRepairAt is the daily fire time of the column repair; nil disables it.
	ColumnRepairAt *kernel.TimeOfDay
	ScanDelay      time.Duration
	MaxRangeDays   int
}
