package bridge

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/slackbridge/slackbridge/internal/report"
	"github.com/slackbridge/slackbridge/internal/store"
)

// eventEnvelope is the outer Events API payload. Two shapes arrive on this
// endpoint: url_verification (token + challenge) and event_callback (token +
// team_id + event). Anything that fails to decode is rejected at the boundary.
type eventEnvelope struct {
	Type      string        `json:"type"`
	Token     string        `json:"token"`
	Challenge string        `json:"challenge"`
	TeamID    string        `json:"team_id"`
	Event     *messageEvent `json:"event"`
}

type messageEvent struct {
	Type        string          `json:"type"`
	User        string          `json:"user"`
	Text        string          `json:"text"`
	Channel     string          `json:"channel"`
	ChannelType string          `json:"channel_type"`
	EventTS     string          `json:"event_ts"`
	Files       json.RawMessage `json:"files,omitempty"`
}

// handleEvents runs the inbound pipeline: gates, challenge handshake, the
// verification/filter check, enrichment, and the webhook forward. Once past
// the gates the response is always a fast 2xx; forward outcomes are surfaced
// through the delivery reporter instead of the platform-facing response.
func (b *Bridge) handleEvents(w http.ResponseWriter, r *http.Request) {
	companyID := strings.TrimSpace(chi.URLParam(r, "companyID"))
	if !isJSONRequest(r) || companyID == "" {
		http.Error(w, "invalid content type or company id", http.StatusNotAcceptable)
		return
	}

	company, err := b.store.CompanyByID(r.Context(), companyID)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("events: company lookup failed: %v", err)
		http.Error(w, "company lookup failed", http.StatusInternalServerError)
		return
	}

	var env eventEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		http.Error(w, "malformed payload", http.StatusNotAcceptable)
		return
	}
	b.noteEventReceived()

	if env.Type == "url_verification" {
		if err := b.store.SetVerificationToken(r.Context(), company.ID, env.Token); err != nil {
			log.Printf("events: verification token persist failed company=%s: %v", company.ID, err)
			http.Error(w, "verification failed", http.StatusInternalServerError)
			return
		}
		b.noteChallenge()
		_, _ = w.Write([]byte(env.Challenge))
		return
	}

	// Authenticity + filter gate: wrong token or anything that is not a
	// direct message is acknowledged and discarded.
	if env.Token == "" || env.Token != company.VerificationToken ||
		env.Event == nil || env.Event.ChannelType != "im" {
		b.noteEventFiltered()
		w.WriteHeader(http.StatusOK)
		return
	}

	started := time.Now()
	forwardErr := b.forwardEvent(r.Context(), company, &env)

	d := report.Delivery{
		Kind:        report.KindForward,
		CompanyID:   company.ID,
		WorkspaceID: env.TeamID,
		Channel:     env.Event.Channel,
		Destination: company.WebhookURL,
		Duration:    time.Since(started),
	}
	if forwardErr != nil {
		d.Error = forwardErr.Error()
	}
	b.reporter.Publish(d)

	w.WriteHeader(http.StatusOK)
}
