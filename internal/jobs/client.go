package jobs

import (
	"context"

	"github.com/hibiken/asynq"
)

// Client submits ledger jobs to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// EnqueueRecalc enqueues a supplier recalculation.
func (c *Client) EnqueueRecalc(ctx context.Context, payload RecalcPayload) (*asynq.TaskInfo, error) {
	task, err := NewRecalcTask(payload)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
}

// EnqueueBackfill enqueues a supplier history backfill.
func (c *Client) EnqueueBackfill(ctx context.Context, payload BackfillPayload) (*asynq.TaskInfo, error) {
	task, err := NewBackfillTask(payload)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
