package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tenants.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCompanyRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := &Company{
		ID:           "cmp-1",
		ClientID:     "client",
		ClientSecret: "secret",
		WebhookURL:   "https://example.com/hook",
		ExternalID:   "helpdesk-42",
	}
	if err := s.InsertCompany(ctx, c); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := s.CompanyByID(ctx, "cmp-1")
	if err != nil {
		t.Fatalf("lookup by id: %v", err)
	}
	if got.WebhookURL != c.WebhookURL || got.VerificationToken != "" {
		t.Fatalf("unexpected company: %#v", got)
	}

	byExt, err := s.CompanyByExternalID(ctx, "helpdesk-42")
	if err != nil {
		t.Fatalf("lookup by external id: %v", err)
	}
	if byExt.ID != "cmp-1" {
		t.Fatalf("external lookup returned %q", byExt.ID)
	}
}

func TestCompanyNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CompanyByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.CompanyByExternalID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetVerificationToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.InsertCompany(ctx, &Company{ID: "cmp-1", ClientID: "a", ClientSecret: "b", WebhookURL: "u", ExternalID: "x"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.SetVerificationToken(ctx, "cmp-1", "verif-token"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	got, err := s.CompanyByID(ctx, "cmp-1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.VerificationToken != "verif-token" {
		t.Fatalf("verification token = %q", got.VerificationToken)
	}
	if err := s.SetVerificationToken(ctx, "missing", "tok"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown company, got %v", err)
	}
}

func TestUpsertAccessTokenReplacesPrior(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertAccessToken(ctx, "cmp-1", "T100", "xoxb-first"); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := s.UpsertAccessToken(ctx, "cmp-1", "T100", "xoxb-second"); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	tok, err := s.AccessToken(ctx, "cmp-1", "T100")
	if err != nil {
		t.Fatalf("read token: %v", err)
	}
	if tok != "xoxb-second" {
		t.Fatalf("token = %q, want the most recent", tok)
	}
}

func TestAccessTokenKeyedByCompanyAndWorkspace(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertAccessToken(ctx, "cmp-1", "T100", "xoxb-one"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.UpsertAccessToken(ctx, "cmp-2", "T100", "xoxb-two"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	one, err := s.AccessToken(ctx, "cmp-1", "T100")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	two, err := s.AccessToken(ctx, "cmp-2", "T100")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if one != "xoxb-one" || two != "xoxb-two" {
		t.Fatalf("tokens collided across tenants: %q %q", one, two)
	}

	absent, err := s.AccessToken(ctx, "cmp-3", "T100")
	if err != nil {
		t.Fatalf("read absent: %v", err)
	}
	if absent != "" {
		t.Fatalf("expected empty token for unknown key, got %q", absent)
	}
}
