package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/enzocoder/portfolio-api/internal/core/ports"
	"github.com/enzocoder/portfolio-api/internal/infrastructure/metrics"
)

const (
	defaultWorkers = 2
	channelBuffer  = 64
)

type job struct {
	ctx  context.Context
	msg  ports.ContactMessage
	done chan error
}

// Dispatcher hands contact messages to a fixed set of mail workers. Messages
// from the same visitor always land on the same worker, so they are delivered
// in submission order. Dispatcher implements ports.Notifier.
type Dispatcher struct {
	workers  []chan job
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers that
// deliver through notifier. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, notifier ports.Notifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan job, numWorkers),
		notifier: notifier,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan job, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Send enqueues msg and waits for its delivery result. It returns ctx.Err()
// if ctx ends before a worker finishes with the message.
func (d *Dispatcher) Send(ctx context.Context, msg ports.ContactMessage) error {
	j := job{ctx: ctx, msg: msg, done: make(chan error, 1)}
	idx := d.shardIndex(msg.Email)

	select {
	case d.workers[idx] <- j:
		metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a visitor address deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(email)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan job) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-ch:
			metrics.MailQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			// The caller already gave up; don't send a message it reported as failed.
			if err := j.ctx.Err(); err != nil {
				j.done <- err
				continue
			}

			start := time.Now()
			err := d.notifier.Send(j.ctx, j.msg)
			result := "ok"
			if err != nil {
				result = "error"
				d.log.Error().Err(err).
					Str("from", j.msg.Email).
					Int("worker_id", id).
					Msg("contact mail delivery failed")
			}
			metrics.MailSendDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
			j.done <- err
		}
	}
}
