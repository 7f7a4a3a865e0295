package bridge

import (
	"context"

	"github.com/slackbridge/slackbridge/internal/platform"
)

type clientKey struct {
	companyID   string
	workspaceID string
}

// resolveClient returns the cached platform client for (companyID,
// workspaceID), constructing it from the persisted token on first use. It
// returns (nil, nil) when no token is stored; callers treat that as a
// recoverable precondition failure. The store lookup and construction happen
// under the cache mutex so concurrent first uses build exactly one client.
func (b *Bridge) resolveClient(ctx context.Context, companyID, workspaceID string) (*platform.Client, error) {
	key := clientKey{companyID: companyID, workspaceID: workspaceID}

	b.clientsMu.Lock()
	defer b.clientsMu.Unlock()

	if c, ok := b.clients[key]; ok {
		return c, nil
	}
	token, err := b.store.AccessToken(ctx, companyID, workspaceID)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}
	c := platform.New(token, b.cfg.SlackAPIBase, b.client)
	b.clients[key] = c
	return c, nil
}

func (b *Bridge) cachedClients() int {
	b.clientsMu.Lock()
	defer b.clientsMu.Unlock()
	return len(b.clients)
}
