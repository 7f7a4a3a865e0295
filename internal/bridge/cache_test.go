package bridge

import (
	"context"
	"sync"
	"testing"
)

func TestResolveClientIsStable(t *testing.T) {
	slack := newFakeSlack(t)
	b, st := newTestBridge(t, slack.srv.URL)
	ctx := context.Background()

	if err := st.UpsertAccessToken(ctx, "cmp-1", "T100", "xoxb-cached"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	first, err := b.resolveClient(ctx, "cmp-1", "T100")
	if err != nil || first == nil {
		t.Fatalf("first resolve: client=%v err=%v", first, err)
	}
	second, err := b.resolveClient(ctx, "cmp-1", "T100")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if first != second {
		t.Fatal("expected the same cached client")
	}
	if first.Token() != "xoxb-cached" {
		t.Fatalf("token=%q", first.Token())
	}
	if b.cachedClients() != 1 {
		t.Fatalf("cache size=%d", b.cachedClients())
	}
}

func TestResolveClientAbsentToken(t *testing.T) {
	slack := newFakeSlack(t)
	b, _ := newTestBridge(t, slack.srv.URL)

	c, err := b.resolveClient(context.Background(), "cmp-1", "T-none")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if c != nil {
		t.Fatal("expected nil client when no token is stored")
	}
	if b.cachedClients() != 0 {
		t.Fatalf("cache size=%d, want 0", b.cachedClients())
	}
	for path, n := range map[string]int{
		"/team.info":  slack.count("/team.info"),
		"/users.info": slack.count("/users.info"),
	} {
		if n != 0 {
			t.Fatalf("unexpected remote call to %s", path)
		}
	}
}

func TestResolveClientConcurrentFirstUse(t *testing.T) {
	b, st := newTestBridge(t, "http://127.0.0.1:1")
	ctx := context.Background()
	if err := st.UpsertAccessToken(ctx, "cmp-1", "T100", "xoxb-race"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	const n = 16
	clients := make([]any, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := b.resolveClient(ctx, "cmp-1", "T100")
			if err != nil {
				t.Errorf("resolve: %v", err)
			}
			clients[i] = c
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if clients[i] != clients[0] {
			t.Fatal("concurrent first use constructed more than one client")
		}
	}
	if b.cachedClients() != 1 {
		t.Fatalf("cache size=%d, want 1", b.cachedClients())
	}
}
