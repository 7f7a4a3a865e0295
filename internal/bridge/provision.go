package bridge

import (
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/slackbridge/slackbridge/internal/store"
)

// handleGenerateWebhook registers a new tenant and returns the auth and
// events webhook paths bound to the freshly generated company id.
func (b *Bridge) handleGenerateWebhook(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	clientID := strings.TrimSpace(q.Get("client_id"))
	clientSecret := strings.TrimSpace(q.Get("client_secret"))
	webhookURL := strings.TrimSpace(q.Get("webhook_url"))
	externalID := strings.TrimSpace(q.Get("company_id"))

	if clientID == "" || clientSecret == "" || webhookURL == "" || externalID == "" {
		writeJSON(w, apiResponse{OK: false, Data: map[string]any{"error": "Missing argument"}})
		return
	}

	company := &store.Company{
		ID:           uuid.NewString(),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		WebhookURL:   webhookURL,
		ExternalID:   externalID,
	}
	if err := b.store.InsertCompany(r.Context(), company); err != nil {
		log.Printf("provision: insert failed: %v", err)
		writeJSON(w, apiResponse{OK: false, Data: map[string]any{"error": "Failed to store company"}})
		return
	}

	writeJSON(w, apiResponse{OK: true, Data: map[string]any{
		"auth_webhook":   "/slack/auth/" + company.ID,
		"events_webhook": "/slack/events/" + company.ID,
	}})
}
