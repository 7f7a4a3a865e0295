package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// OAuthAccessResponse is the oauth.access exchange result. Only the fields the
// bridge consumes are mapped.
type OAuthAccessResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	TeamID string `json:"team_id"`
	Bot    struct {
		BotUserID      string `json:"bot_user_id"`
		BotAccessToken string `json:"bot_access_token"`
	} `json:"bot"`
}

// ExchangeCode trades an authorization code for a bot token via oauth.access.
// The call is unauthenticated bootstrap: the tenant's client id and secret go
// in the form body, no bearer token is attached.
func ExchangeCode(ctx context.Context, client *http.Client, apiBase, clientID, clientSecret, code string) (*OAuthAccessResponse, error) {
	base := strings.TrimRight(strings.TrimSpace(apiBase), "/")
	if base == "" {
		base = "https://slack.com/api"
	}
	form := url.Values{
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"code":          {code},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/oauth.access", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("oauth.access status: %d", resp.StatusCode)
	}
	var out OAuthAccessResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("oauth.access decode: %w", err)
	}
	return &out, nil
}
