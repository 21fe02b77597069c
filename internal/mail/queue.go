package mail

import (
	"context"
	"fmt"
	"time"

	"sponsorship-backend/internal/logger"
)

type job struct {
	msg     Message
	retries int
}

// Queue is a channel-backed Dispatcher processing messages on worker
// goroutines with exponential-backoff retries.
type Queue struct {
	sender     Sender
	jobs       chan job
	workers    int
	maxRetries int
}

func NewQueue(sender Sender, workers, buffer, maxRetries int) *Queue {
	return &Queue{
		sender:     sender,
		jobs:       make(chan job, buffer),
		workers:    workers,
		maxRetries: maxRetries,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (q *Queue) Start(ctx context.Context) {
	for i := 0; i < q.workers; i++ {
		go q.worker(ctx, i)
	}
}

func (q *Queue) worker(ctx context.Context, id int) {
	logger.Debug("Mail worker started", "worker", id)
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Mail worker stopping", "worker", id)
			return
		case j := <-q.jobs:
			q.process(j)
		}
	}
}

func (q *Queue) process(j job) {
	err := q.sender.Send(j.msg)
	if err == nil {
		logger.Debug("Mail sent", "template", j.msg.Template, "recipients", len(j.msg.Recipients))
		return
	}

	logger.Error("Mail send failed", "template", j.msg.Template, "error", err)
	if j.retries >= q.maxRetries {
		logger.Error("Mail dropped after max retries", "template", j.msg.Template, "retries", j.retries)
		return
	}

	j.retries++
	backoff := time.Duration(j.retries*j.retries) * time.Second
	time.AfterFunc(backoff, func() {
		select {
		case q.jobs <- j:
		default:
			logger.Error("Mail dropped, queue full on retry", "template", j.msg.Template)
		}
	})
}

// Enqueue submits a message without blocking on delivery. A full queue is an
// error so callers can log the loss.
func (q *Queue) Enqueue(ctx context.Context, msg Message) error {
	select {
	case q.jobs <- job{msg: msg}:
		return nil
	default:
		return fmt.Errorf("mail queue is full")
	}
}
