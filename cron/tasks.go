package cron

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeAutoAssign       = "booking:auto_assign"
	TypeSweepUnassigned  = "booking:sweep_unassigned"
	assignmentQueue      = "assignments"
	autoAssignTaskPrefix = "auto-assign:"

	attemptTimeout = 2 * time.Minute
)

// AutoAssignPayload identifies the booking to resolve and when it is due.
type AutoAssignPayload struct {
	BookingID string    `json:"booking_id"`
	Deadline  time.Time `json:"deadline,omitempty"`
}

// NewAutoAssignTask builds the resolution task for one booking. The task id is
// derived from the booking so a booking has at most one queued resolution. The
// deadline travels in the payload only; the handler stops retrying once it passes.
func NewAutoAssignTask(bookingID string, deadline time.Time, maxRetry int) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(AutoAssignPayload{BookingID: bookingID, Deadline: deadline})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAutoAssign, b)
	opts := []asynq.Option{
		asynq.Queue(assignmentQueue),
		asynq.TaskID(autoAssignTaskPrefix + bookingID),
		asynq.MaxRetry(maxRetry),
		asynq.Timeout(attemptTimeout),
	}
	return task, opts, nil
}

func NewSweepTask() *asynq.Task {
	return asynq.NewTask(TypeSweepUnassigned, nil)
}
