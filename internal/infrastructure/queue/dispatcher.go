// Package queue delivers account emails asynchronously so the auth workflows
// never block on SES.
package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/propamit/propamit-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

type mailKind int

const (
	mailVerification mailKind = iota
	mailWelcome
	mailReset
)

type mailJob struct {
	kind  mailKind
	email string
	name  string
	token string
}

// MailDispatcher implements ports.Mailer by queueing jobs onto a fixed set of
// workers, sharded by recipient with consistent hashing so emails to the same
// address are sent in the order they were produced (verification before
// welcome). Delivery failures are logged by the worker, never surfaced.
type MailDispatcher struct {
	workers []chan mailJob
	mailer  ports.Mailer
	log     zerolog.Logger
}

// NewMailDispatcher creates a MailDispatcher with numWorkers sharded workers
// wrapping the given delivery backend. If numWorkers <= 0, defaultWorkers is
// used.
func NewMailDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *MailDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &MailDispatcher{
		workers: make([]chan mailJob, numWorkers),
		mailer:  mailer,
		log:     log.With().Str("component", "mail_queue").Logger(),
	}
	for i := range d.workers {
		d.workers[i] = make(chan mailJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// jobs still queued at that point are dropped, which is acceptable for
// best-effort notification mail.
func (d *MailDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

func (d *MailDispatcher) SendVerificationEmail(_ context.Context, email, name, token string) error {
	d.enqueue(mailJob{kind: mailVerification, email: email, name: name, token: token})
	return nil
}

func (d *MailDispatcher) SendWelcomeEmail(_ context.Context, email, name string) error {
	d.enqueue(mailJob{kind: mailWelcome, email: email, name: name})
	return nil
}

func (d *MailDispatcher) SendResetEmail(_ context.Context, email, token string) error {
	d.enqueue(mailJob{kind: mailReset, email: email, token: token})
	return nil
}

// enqueue sends a job to the worker responsible for its recipient. The call
// is non-blocking up to channelBuffer capacity.
func (d *MailDispatcher) enqueue(job mailJob) {
	d.workers[d.shardIndex(job.email)] <- job
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *MailDispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *MailDispatcher) runWorker(ctx context.Context, id int, ch <-chan mailJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			if err := d.deliver(ctx, job); err != nil {
				d.log.Error().Err(err).
					Str("email", job.email).
					Int("worker_id", id).
					Msg("email delivery failed")
			}
		}
	}
}

func (d *MailDispatcher) deliver(ctx context.Context, job mailJob) error {
	switch job.kind {
	case mailVerification:
		return d.mailer.SendVerificationEmail(ctx, job.email, job.name, job.token)
	case mailWelcome:
		return d.mailer.SendWelcomeEmail(ctx, job.email, job.name)
	default:
		return d.mailer.SendResetEmail(ctx, job.email, job.token)
	}
}
