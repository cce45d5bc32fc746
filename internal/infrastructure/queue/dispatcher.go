package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/thinqor/ats-assistant/internal/pkg/metrics"
	"github.com/thinqor/ats-assistant/internal/core/domain"
	"github.com/thinqor/ats-assistant/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher writes chat exchanges to the audit repository from a fixed set
// of workers. Exchanges are sharded by user id so each user's history is
// written in order. Enqueue never blocks: when a worker queue is full the
// exchange is dropped and counted.
type Dispatcher struct {
	workers []chan domain.ChatExchange
	repo    ports.AuditRepository
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ChatExchange, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ChatExchange, channelBuffer)
	}
	return d
}

var _ ports.AuditSink = (*Dispatcher)(nil)

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or after Close has drained their queues.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an exchange to the worker responsible for its user.
func (d *Dispatcher) Enqueue(exchange domain.ChatExchange) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	idx := d.shardIndex(exchange.UserID.String())
	select {
	case d.workers[idx] <- exchange:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.AuditDroppedTotal.Inc()
		d.log.Warn().
			Str("exchange_id", exchange.ID).
			Int("worker_id", idx).
			Msg("audit queue full, dropping chat exchange")
	}
}

// Close stops accepting exchanges and waits for queued ones to be written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ChatExchange) {
	defer d.wg.Done()
	depth := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case exchange, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			d.write(ctx, id, exchange)
		}
	}
}

func (d *Dispatcher) write(ctx context.Context, id int, exchange domain.ChatExchange) {
	// the request that produced the exchange is already gone
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	if err := d.repo.InsertExchange(writeCtx, &exchange); err != nil {
		d.log.Error().Err(err).
			Str("exchange_id", exchange.ID).
			Int("worker_id", id).
			Msg("audit write failed")
	}
}
