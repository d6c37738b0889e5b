package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"elysee/internal/infra"
	"elysee/internal/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueFacture = "jobs:facture"
	QueueEmail   = "jobs:email"

	JobFacture = "facture"
	JobEmail   = "email"

	maxAttempts = 3
)

// ErrPermanent marks a job that must not be retried (bad payload, unknown
// client). It goes straight to the DLQ.
var ErrPermanent = errors.New("échec définitif")

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler processes one job payload.
type Handler interface {
	Process(ctx context.Context, raw json.RawMessage) error
}

// Pusher is the list primitive shared by the dispatcher and the DLQ.
type Pusher interface {
	LPush(ctx context.Context, key string, data []byte) error
}

type redisPusher struct{ rdb *redis.Client }

func (p redisPusher) LPush(ctx context.Context, key string, data []byte) error {
	return p.rdb.LPush(ctx, key, data).Err()
}

// NewRedisPusher adapts a go-redis client to Pusher.
func NewRedisPusher(rdb *redis.Client) Pusher { return redisPusher{rdb: rdb} }

// ── Dispatcher ────────────────────────────────────────────────────────────────

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	q Pusher
}

func NewDispatcher(q Pusher) *Dispatcher {
	return &Dispatcher{q: q}
}

// EnqueueFacture pushes an invoice delivery job. It satisfies
// service.FactureQueue.
func (d *Dispatcher) EnqueueFacture(ctx context.Context, clientID uuid.UUID, email string, typ infra.TypeDocument) error {
	return d.enqueue(ctx, QueueFacture, Job{Type: JobFacture}, FactureJobPayload{
		ClientID: clientID.String(),
		Email:    email,
		Type:     string(typ),
	})
}

// EnqueueEmail pushes a mail job.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, Job{Type: JobEmail}, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue string, job Job, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job.Payload = data
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.q.LPush(ctx, queue, encoded)
}

func (d *Dispatcher) requeue(ctx context.Context, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.q.LPush(ctx, queue, encoded)
}

// ── Pool ──────────────────────────────────────────────────────────────────────

// Pool routes jobs popped from the queues to their handler. A failed job is
// pushed back with an incremented attempt count until maxAttempts, then
// moved to the DLQ.
type Pool struct {
	rdb        *redis.Client
	dispatcher *Dispatcher
	handlers   map[string]Handler
	backoff    func(attempt int) time.Duration
}

func NewPool(rdb *redis.Client, dispatcher *Dispatcher, handlers map[string]Handler) *Pool {
	return &Pool{
		rdb:        rdb,
		dispatcher: dispatcher,
		handlers:   handlers,
		backoff:    func(attempt int) time.Duration { return time.Duration(1<<attempt) * time.Second },
	}
}

// Start launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP, so idle workers cost nothing.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go p.run(ctx, i)
	}
	log.Info().Int("workers", numWorkers).Msg("pool de workers démarré")
}

func (p *Pool) run(ctx context.Context, id int) {
	queues := []string{QueueFacture, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("arrêt du worker")
			return
		default:
			// Waits up to 5s then loops to check ctx.
			result, err := p.rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil || len(result) < 2 {
				continue
			}
			p.handle(ctx, result[0], []byte(result[1]))
		}
	}
}

func (p *Pool) handle(ctx context.Context, queue string, raw []byte) {
	var job Job
	if err := json.Unmarshal(raw, &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("job illisible")
		SendToDLQ(ctx, p.dispatcher.q, queue, "inconnu", raw, err.Error(), 0)
		metrics.Jobs.WithLabelValues(queue, "dlq").Inc()
		return
	}

	h, ok := p.handlers[job.Type]
	if !ok {
		SendToDLQ(ctx, p.dispatcher.q, queue, job.Type, job.Payload, "type de job inconnu", job.Attempts)
		metrics.Jobs.WithLabelValues(queue, "dlq").Inc()
		return
	}

	job.Attempts++
	err := h.Process(ctx, job.Payload)
	if err == nil {
		metrics.Jobs.WithLabelValues(queue, "ok").Inc()
		return
	}

	log.Warn().Err(err).Str("queue", queue).Str("type", job.Type).Int("tentative", job.Attempts).Msg("échec du job")
	if errors.Is(err, ErrPermanent) || errors.Is(err, infra.ErrCircuitOpen) || job.Attempts >= maxAttempts {
		SendToDLQ(ctx, p.dispatcher.q, queue, job.Type, job.Payload, err.Error(), job.Attempts)
		metrics.Jobs.WithLabelValues(queue, "dlq").Inc()
		return
	}

	select {
	case <-ctx.Done():
	case <-time.After(p.backoff(job.Attempts)):
	}
	if rerr := p.dispatcher.requeue(ctx, queue, job); rerr != nil {
		SendToDLQ(ctx, p.dispatcher.q, queue, job.Type, job.Payload, fmt.Sprintf("%v (remise en file: %v)", err, rerr), job.Attempts)
		metrics.Jobs.WithLabelValues(queue, "dlq").Inc()
		return
	}
	metrics.Jobs.WithLabelValues(queue, "retry").Inc()
}
