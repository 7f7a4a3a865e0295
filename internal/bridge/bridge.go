// Package bridge routes Slack OAuth callbacks, inbound events, and outbound
// sends between tenant companies and their workspaces.
package bridge

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/slackbridge/slackbridge/internal/config"
	"github.com/slackbridge/slackbridge/internal/platform"
	"github.com/slackbridge/slackbridge/internal/report"
	"github.com/slackbridge/slackbridge/internal/store"
)

// Bridge holds the tenant store, the per-workspace client cache, and the
// delivery reporter shared by all request handlers.
type Bridge struct {
	cfg      config.Config
	store    *store.Store
	client   *http.Client
	reporter *report.Reporter

	clientsMu sync.Mutex
	clients   map[clientKey]*platform.Client

	statusMu sync.RWMutex
	status   Status
}

// Status is the counter snapshot served by /status.
type Status struct {
	StartedAt          time.Time `json:"started_at"`
	EventsReceived     int       `json:"events_received"`
	EventsFiltered     int       `json:"events_filtered"`
	EventsForwarded    int       `json:"events_forwarded"`
	ForwardErrors      int       `json:"forward_errors"`
	ChallengesAnswered int       `json:"challenges_answered"`
	SendsRelayed       int       `json:"sends_relayed"`
	RelayErrors        int       `json:"relay_errors"`
	LastError          string    `json:"last_error,omitempty"`
	LastErrorAt        string    `json:"last_error_at,omitempty"`
}

// New builds a bridge and subscribes its delivery bookkeeping to reporter.
func New(cfg config.Config, st *store.Store, reporter *report.Reporter) *Bridge {
	b := &Bridge{
		cfg:      cfg,
		store:    st,
		client:   &http.Client{Timeout: cfg.HTTPTimeout},
		reporter: reporter,
		clients:  map[clientKey]*platform.Client{},
		status: Status{
			StartedAt: time.Now().UTC(),
		},
	}
	reporter.Subscribe(b.recordDelivery)
	return b
}

// Router returns the full HTTP surface.
func (b *Bridge) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/slack", b.handleIndex)
	r.Get("/slack/auth/{companyID}", b.handleAuth)
	r.Post("/slack/events/{companyID}", b.handleEvents)
	r.Get("/slack/generate_webhook", b.handleGenerateWebhook)
	r.Post("/slack/send", b.handleSend)
	r.Get("/healthz", b.handleHealthz)
	r.Get("/status", b.handleStatus)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// handleIndex is a diagnostic sink: it logs whatever Slack posts and
// acknowledges with an empty 200.
func (b *Bridge) handleIndex(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "bad body", http.StatusBadRequest)
		return
	}
	log.Printf("diagnostic payload: %s", body)
	w.WriteHeader(http.StatusOK)
}

func (b *Bridge) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{"ok": true})
}

func (b *Bridge) snapshot() Status {
	b.statusMu.RLock()
	defer b.statusMu.RUnlock()
	return b.status
}

func (b *Bridge) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"ok":              true,
		"status":          b.snapshot(),
		"clients_cached":  b.cachedClients(),
		"reports_pending": b.reporter.Pending(),
		"reports_dropped": b.reporter.Dropped(),
	})
}

// recordDelivery consumes reporter output: counters, metrics, and a log line
// for failures. The caller-visible responses are unaffected.
func (b *Bridge) recordDelivery(d report.Delivery) {
	outcome := "ok"
	if !d.OK() {
		outcome = "error"
	}
	metricDeliveries.WithLabelValues(string(d.Kind), outcome).Inc()

	b.statusMu.Lock()
	switch d.Kind {
	case report.KindForward:
		if d.OK() {
			b.status.EventsForwarded++
		} else {
			b.status.ForwardErrors++
		}
	case report.KindRelay:
		if d.OK() {
			b.status.SendsRelayed++
		} else {
			b.status.RelayErrors++
		}
	}
	if !d.OK() {
		b.status.LastError = d.Error
		b.status.LastErrorAt = d.At.Format(time.RFC3339)
	}
	b.statusMu.Unlock()

	if !d.OK() {
		log.Printf("%s delivery failed company=%s workspace=%s: %s", d.Kind, d.CompanyID, d.WorkspaceID, d.Error)
	}
}

func (b *Bridge) noteEventReceived() {
	metricEventsReceived.Inc()
	b.statusMu.Lock()
	b.status.EventsReceived++
	b.statusMu.Unlock()
}

func (b *Bridge) noteEventFiltered() {
	metricEventsFiltered.Inc()
	b.statusMu.Lock()
	b.status.EventsFiltered++
	b.statusMu.Unlock()
}

func (b *Bridge) noteChallenge() {
	metricChallenges.Inc()
	b.statusMu.Lock()
	b.status.ChallengesAnswered++
	b.statusMu.Unlock()
}

// apiResponse is the {ok, data} envelope shared by the JSON endpoints.
type apiResponse struct {
	OK   bool           `json:"ok"`
	Data map[string]any `json:"data"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func isJSONRequest(r *http.Request) bool {
	return strings.HasPrefix(strings.TrimSpace(r.Header.Get("Content-Type")), "application/json")
}
