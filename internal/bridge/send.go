package bridge

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/slackbridge/slackbridge/internal/report"
	"github.com/slackbridge/slackbridge/internal/store"
)

type sendRequest struct {
	CompanyID   string `json:"company_id"`
	WorkspaceID string `json:"workspace_id"`
	ChannelID   string `json:"channel_id"`
	Text        string `json:"text"`
}

// handleSend relays an outbound message through the cached workspace client.
// The company is addressed by its external reference id, not the internal id
// the other endpoints use. The remote call's own success flag is not inspected
// for the response; its error, if any, goes to the delivery reporter.
func (b *Bridge) handleSend(w http.ResponseWriter, r *http.Request) {
	if !isJSONRequest(r) {
		writeJSON(w, apiResponse{OK: false, Data: map[string]any{"error": "Invalid content-type"}})
		return
	}

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, apiResponse{OK: false, Data: map[string]any{"error": "Malformed payload"}})
		return
	}
	req.WorkspaceID = strings.TrimSpace(req.WorkspaceID)
	req.ChannelID = strings.TrimSpace(req.ChannelID)

	company, err := b.store.CompanyByExternalID(r.Context(), strings.TrimSpace(req.CompanyID))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("send: company lookup failed: %v", err)
		writeJSON(w, apiResponse{OK: false, Data: map[string]any{"error": "Company lookup failed"}})
		return
	}
	if company == nil || req.WorkspaceID == "" || req.ChannelID == "" || req.Text == "" {
		writeJSON(w, apiResponse{OK: false, Data: map[string]any{"error": "Missing argument or company not found"}})
		return
	}

	client, err := b.resolveClient(r.Context(), company.ID, req.WorkspaceID)
	if err != nil {
		log.Printf("send: client resolution failed company=%s: %v", company.ID, err)
		writeJSON(w, apiResponse{OK: false, Data: map[string]any{"error": "Client resolution failed"}})
		return
	}
	if client == nil {
		writeJSON(w, apiResponse{OK: false, Data: map[string]any{"error": "No access token for workspace"}})
		return
	}

	started := time.Now()
	postErr := client.PostMessage(r.Context(), req.ChannelID, req.Text)

	d := report.Delivery{
		Kind:        report.KindRelay,
		CompanyID:   company.ID,
		WorkspaceID: req.WorkspaceID,
		Channel:     req.ChannelID,
		Duration:    time.Since(started),
	}
	if postErr != nil {
		d.Error = postErr.Error()
	}
	b.reporter.Publish(d)

	writeJSON(w, apiResponse{OK: true, Data: map[string]any{}})
}
