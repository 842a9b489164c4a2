package tasks

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
)

type cronSchedule struct {
	expr string
}

func (s cronSchedule) String() string {
	return fmt.Sprintf("cron=%s", s.expr)
}

func (s cronSchedule) Type() asynq.OptionType {
	return asynq.ProcessAtOpt
}

func (s cronSchedule) Value() interface{} {
	return s.expr
}

func (s cronSchedule) Apply(opts *asynq.TaskInfo) {
	schedule, err := cron.ParseStandard(s.expr)
	if err != nil {
		// Fall back to default interval if parsing fails
		opts.NextProcessAt = time.Now().Add(1 * time.Hour)
		return
	}

	opts.NextProcessAt = schedule.Next(time.Now())
}

// CronSchedule returns an option to schedule a task with a cron expression
func CronSchedule(expr string) asynq.Option {
	return cronSchedule{expr: expr}
}

// EnqueueAtNext enqueues one run of taskType at the next occurrence of
// the cron expression. Used at startup so a fresh deployment gets its
// first maintenance pass without waiting for the scheduler process.
func (c *TaskClient) EnqueueAtNext(taskType, spec string) error {
	_, err := c.client.Enqueue(
		asynq.NewTask(taskType, nil),
		CronSchedule(spec),
		asynq.Queue(QueueLow),
		asynq.MaxRetry(RetryMin),
		asynq.Timeout(TimeoutLong),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", taskType, err)
	}
	c.logger.Info("enqueued %s for next %s", taskType, spec)
	return nil
}

// EnqueueOrphanSweep schedules a near-term sweep. Deletion events use it
// so an orphaned object is collected before the nightly run. The short
// delay coalesces bursts of deletions into one pass.
func (c *TaskClient) EnqueueOrphanSweep() error {
	_, err := c.client.Enqueue(
		asynq.NewTask(TaskTypeOrphanSweep, nil),
		asynq.Queue(QueueLow),
		asynq.MaxRetry(RetryMin),
		asynq.Timeout(TimeoutLong),
		asynq.ProcessIn(5*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", TaskTypeOrphanSweep, err)
	}
	return nil
}
