// Package report makes delivery outcomes observable without blocking the
// request paths that produce them.
package report

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Kind identifies the delivery path a report came from.
type Kind string

const (
	// KindForward is an inbound event forwarded to a tenant webhook.
	KindForward Kind = "forward"
	// KindRelay is an outbound message relayed to the chat platform.
	KindRelay Kind = "relay"
)

// Delivery is one delivery attempt's outcome.
type Delivery struct {
	Kind        Kind          `json:"kind"`
	CompanyID   string        `json:"company_id"`
	WorkspaceID string        `json:"workspace_id"`
	Channel     string        `json:"channel,omitempty"`
	Destination string        `json:"destination,omitempty"`
	Duration    time.Duration `json:"duration"`
	Error       string        `json:"error,omitempty"`
	At          time.Time     `json:"at"`
}

// OK reports whether the delivery succeeded.
func (d Delivery) OK() bool { return d.Error == "" }

// Reporter fans delivery reports out to subscribers. Publish never blocks:
// when the buffer is full the report is dropped and counted.
type Reporter struct {
	ch      chan Delivery
	dropped atomic.Int64

	mu   sync.RWMutex
	subs []func(Delivery)
}

// NewReporter creates a reporter with the given buffer size.
func NewReporter(buffer int) *Reporter {
	if buffer <= 0 {
		buffer = 256
	}
	return &Reporter{ch: make(chan Delivery, buffer)}
}

// Publish enqueues a delivery report, stamping At if unset.
func (r *Reporter) Publish(d Delivery) {
	if d.At.IsZero() {
		d.At = time.Now().UTC()
	}
	select {
	case r.ch <- d:
	default:
		r.dropped.Add(1)
	}
}

// Subscribe registers a callback invoked for every consumed report.
// Subscriptions must be registered before Run.
func (r *Reporter) Subscribe(fn func(Delivery)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, fn)
}

// Run consumes reports until the context is cancelled.
// This should be run as a goroutine.
func (r *Reporter) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d := <-r.ch:
			r.mu.RLock()
			subs := r.subs
			r.mu.RUnlock()
			for _, fn := range subs {
				fn(d)
			}
		}
	}
}

// Pending returns the number of buffered reports.
func (r *Reporter) Pending() int { return len(r.ch) }

// Dropped returns the number of reports dropped on a full buffer.
func (r *Reporter) Dropped() int64 { return r.dropped.Load() }
