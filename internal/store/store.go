// Package store persists tenant companies and workspace access tokens.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("store: not found")

// Company is a tenant record. The verification token starts empty and is set
// by the first url_verification handshake.
type Company struct {
	ID                string
	ClientID          string
	ClientSecret      string
	WebhookURL        string
	VerificationToken string
	ExternalID        string
}

// Store wraps the tenant database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the tenant database at dbPath and applies
// the schema.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open tenant db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertCompany stores a newly provisioned company. The caller assigns the id.
func (s *Store) InsertCompany(ctx context.Context, c *Company) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO companies (id, client_id, client_secret, webhook_url, verification_token, external_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.ClientID, c.ClientSecret, c.WebhookURL, c.VerificationToken, c.ExternalID)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// CompanyByID looks up a company by its internal id.
func (s *Store) CompanyByID(ctx context.Context, id string) (*Company, error) {
	return s.companyWhere(ctx, "id = ?", id)
}

// CompanyByExternalID looks up a company by the upstream reference id used by
// the send relay.
func (s *Store) CompanyByExternalID(ctx context.Context, externalID string) (*Company, error) {
	return s.companyWhere(ctx, "external_id = ?", externalID)
}

func (s *Store) companyWhere(ctx context.Context, where string, arg any) (*Company, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, client_id, client_secret, webhook_url, verification_token, external_id
		FROM companies WHERE `+where, arg)
	var c Company
	err := row.Scan(&c.ID, &c.ClientID, &c.ClientSecret, &c.WebhookURL, &c.VerificationToken, &c.ExternalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query company: %w", err)
	}
	return &c, nil
}

// SetVerificationToken records the verification token delivered by the
// url_verification handshake. The store allows overwrite; in practice the
// platform sends the handshake once per integration.
func (s *Store) SetVerificationToken(ctx context.Context, companyID, token string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE companies SET verification_token = ? WHERE id = ?`, token, companyID)
	if err != nil {
		return fmt.Errorf("set verification token: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertAccessToken stores the bot token for (companyID, workspaceID),
// replacing any previous token for that key. Re-authorization is idempotent.
func (s *Store) UpsertAccessToken(ctx context.Context, companyID, workspaceID, token string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO access_tokens (company_id, workspace_id, access_token)
		VALUES (?, ?, ?)
		ON CONFLICT (company_id, workspace_id)
		DO UPDATE SET access_token = excluded.access_token, updated_at = CURRENT_TIMESTAMP`,
		companyID, workspaceID, token)
	if err != nil {
		return fmt.Errorf("upsert access token: %w", err)
	}
	return nil
}

// AccessToken returns the stored bot token for (companyID, workspaceID), or
// "" when none exists.
func (s *Store) AccessToken(ctx context.Context, companyID, workspaceID string) (string, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT access_token FROM access_tokens WHERE company_id = ? AND workspace_id = ?`,
		companyID, workspaceID)
	var token string
	err := row.Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query access token: %w", err)
	}
	return token, nil
}
