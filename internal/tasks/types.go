package tasks

import "time"

// Task Types
const (
	TaskTypeOrphanSweep      = "maintenance:orphaned_uploads"
	TaskTypeCalcLogRetention = "maintenance:calclog_retention"
)

// Task Queues
const (
	QueueDefault = "default" // For regular tasks
	QueueLow     = "low"     // For background maintenance
)

// Task Timeouts
const (
	TimeoutShort  = 1 * time.Minute
	TimeoutMedium = 5 * time.Minute
	TimeoutLong   = 30 * time.Minute
)

// Task Retry Settings
const (
	RetryMax     = 5
	RetryDefault = 3
	RetryMin     = 1
)

// Cron expressions for the periodic maintenance jobs.
const (
	ScheduleOrphanSweep      = "30 3 * * *"
	ScheduleCalcLogRetention = "0 4 * * *"
)
