package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// AssignmentQueue enqueues auto-assign tasks on asynq.
type AssignmentQueue struct {
	client   *asynq.Client
	maxRetry int
}

func NewAssignmentQueue(client *asynq.Client, maxRetry int) *AssignmentQueue {
	return &AssignmentQueue{client: client, maxRetry: maxRetry}
}

// EnqueueAutoAssign schedules resolution of a booking. A resolution already queued
// for the same booking is kept.
func (q *AssignmentQueue) EnqueueAutoAssign(ctx context.Context, bookingID string, deadline time.Time) error {
	task, opts, err := NewAutoAssignTask(bookingID, deadline, q.maxRetry)
	if err != nil {
		return fmt.Errorf("build auto-assign task: %w", err)
	}
	if _, err := q.client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("enqueue auto-assign for %s: %w", bookingID, err)
	}
	return nil
}
