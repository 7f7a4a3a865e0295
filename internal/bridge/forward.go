package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/slackbridge/slackbridge/internal/store"
)

// NormalizedEvent is the canonical payload forwarded to a tenant's webhook,
// decoupled from Slack's native event schema.
type NormalizedEvent struct {
	Contact Contact `json:"contact"`
	Message Message `json:"message"`
}

type Contact struct {
	Workspace Workspace `json:"workspace"`
	User      User      `json:"user"`
}

type Workspace struct {
	ID      string `json:"id"`
	Domain  string `json:"domain"`
	Channel string `json:"channel"`
}

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar Avatar `json:"avatar"`
}

// Avatar carries the profile image URLs at the fixed Slack resolutions, each
// optional.
type Avatar struct {
	ImageOriginal string `json:"image_original,omitempty"`
	Image24       string `json:"image_24,omitempty"`
	Image32       string `json:"image_32,omitempty"`
	Image48       string `json:"image_48,omitempty"`
	Image72       string `json:"image_72,omitempty"`
	Image192      string `json:"image_192,omitempty"`
	Image512      string `json:"image_512,omitempty"`
}

type Message struct {
	Text      string          `json:"text"`
	Timestamp string          `json:"timestamp"`
	Files     json.RawMessage `json:"files,omitempty"`
}

// forwardEvent enriches a qualifying direct-message event with workspace and
// user metadata and posts the normalized payload to the company webhook.
func (b *Bridge) forwardEvent(ctx context.Context, company *store.Company, env *eventEnvelope) error {
	client, err := b.resolveClient(ctx, company.ID, env.TeamID)
	if err != nil {
		return fmt.Errorf("resolve client: %w", err)
	}
	if client == nil {
		return fmt.Errorf("no access token for workspace %s", env.TeamID)
	}

	team, err := client.TeamInfo(ctx)
	if err != nil {
		return fmt.Errorf("team.info: %w", err)
	}
	user, err := client.UserInfo(ctx, env.Event.User)
	if err != nil {
		return fmt.Errorf("users.info: %w", err)
	}

	payload := NormalizedEvent{
		Contact: Contact{
			Workspace: Workspace{
				ID:      env.TeamID,
				Domain:  team.Domain,
				Channel: env.Event.Channel,
			},
			User: User{
				ID:    env.Event.User,
				Name:  user.Name,
				Email: user.Profile.Email,
				Avatar: Avatar{
					ImageOriginal: user.Profile.ImageOriginal,
					Image24:       user.Profile.Image24,
					Image32:       user.Profile.Image32,
					Image48:       user.Profile.Image48,
					Image72:       user.Profile.Image72,
					Image192:      user.Profile.Image192,
					Image512:      user.Profile.Image512,
				},
			},
		},
		Message: Message{
			Text:      env.Event.Text,
			Timestamp: env.Event.EventTS,
			Files:     env.Event.Files,
		},
	}
	return b.postWebhook(ctx, company.WebhookURL, payload)
}

func (b *Bridge) postWebhook(ctx context.Context, webhookURL string, payload NormalizedEvent) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook status: %d", resp.StatusCode)
	}
	return nil
}
