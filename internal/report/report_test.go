package report

import (
	"context"
	"testing"
	"time"
)

func TestReporterDispatchesToSubscribers(t *testing.T) {
	r := NewReporter(8)
	got := make(chan Delivery, 1)
	r.Subscribe(func(d Delivery) { got <- d })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	r.Publish(Delivery{Kind: KindForward, CompanyID: "cmp-1", Error: "boom"})

	select {
	case d := <-got:
		if d.Kind != KindForward || d.CompanyID != "cmp-1" || d.OK() {
			t.Fatalf("unexpected delivery: %#v", d)
		}
		if d.At.IsZero() {
			t.Fatal("At not stamped")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for report")
	}
}

func TestReporterDropsOnFullBuffer(t *testing.T) {
	r := NewReporter(1)
	r.Publish(Delivery{Kind: KindRelay})
	r.Publish(Delivery{Kind: KindRelay})

	if r.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", r.Pending())
	}
	if r.Dropped() != 1 {
		t.Fatalf("dropped = %d, want 1", r.Dropped())
	}
}
