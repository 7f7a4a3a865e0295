// Package platform wraps authenticated calls to the Slack API for a single
// (company, workspace) pairing.
package platform

import (
	"context"
	"net/http"
	"strings"

	"github.com/slack-go/slack"
)

// Client is a per-workspace handle bound to one bot token.
type Client struct {
	api   *slack.Client
	token string
}

// New builds a client bound to token. apiBase overrides the Slack API root
// for tests and self-hosted proxies.
func New(token, apiBase string, httpClient *http.Client) *Client {
	base := strings.TrimSpace(apiBase)
	if base == "" {
		base = "https://slack.com/api"
	}
	base = strings.TrimRight(base, "/") + "/"
	opts := []slack.Option{slack.OptionAPIURL(base)}
	if httpClient != nil {
		opts = append(opts, slack.OptionHTTPClient(httpClient))
	}
	return &Client{
		api:   slack.New(token, opts...),
		token: token,
	}
}

// Token returns the bot token the client was constructed with.
func (c *Client) Token() string { return c.token }

// TeamInfo fetches workspace metadata (team.info).
func (c *Client) TeamInfo(ctx context.Context) (*slack.TeamInfo, error) {
	return c.api.GetTeamInfoContext(ctx)
}

// UserInfo fetches a user's profile (users.info).
func (c *Client) UserInfo(ctx context.Context, userID string) (*slack.User, error) {
	return c.api.GetUserInfoContext(ctx, userID)
}

// PostMessage posts text to a channel (chat.postMessage).
func (c *Client) PostMessage(ctx context.Context, channelID, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	return err
}
