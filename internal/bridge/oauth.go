package bridge

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/slackbridge/slackbridge/internal/platform"
	"github.com/slackbridge/slackbridge/internal/store"
)

// handleAuth completes the OAuth authorization-code exchange for a company
// and persists the resulting bot token. Responds with the literal body "OK"
// on success and "Error" on any failure other than an unknown company, which
// is a 404. Nothing is persisted on the failure paths.
func (b *Bridge) handleAuth(w http.ResponseWriter, r *http.Request) {
	companyID := strings.TrimSpace(chi.URLParam(r, "companyID"))
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if companyID == "" || code == "" {
		fmt.Fprint(w, "Error")
		return
	}

	company, err := b.store.CompanyByID(r.Context(), companyID)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("oauth: company lookup failed: %v", err)
		fmt.Fprint(w, "Error")
		return
	}

	// Bootstrap call: the exchange itself carries no bearer token.
	resp, err := platform.ExchangeCode(r.Context(), b.client, b.cfg.SlackAPIBase, company.ClientID, company.ClientSecret, code)
	if err != nil {
		log.Printf("oauth: exchange failed company=%s: %v", company.ID, err)
		fmt.Fprint(w, "Error")
		return
	}
	if !resp.OK || resp.TeamID == "" || resp.Bot.BotAccessToken == "" {
		log.Printf("oauth: exchange rejected company=%s error=%s", company.ID, resp.Error)
		fmt.Fprint(w, "Error")
		return
	}

	if err := b.store.UpsertAccessToken(r.Context(), company.ID, resp.TeamID, resp.Bot.BotAccessToken); err != nil {
		log.Printf("oauth: token upsert failed company=%s: %v", company.ID, err)
		fmt.Fprint(w, "Error")
		return
	}
	fmt.Fprint(w, "OK")
}
