package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueEmail returns an address that does not collide across parallel tests.
func UniqueEmail(prefix string) string {
	return prefix + "-" + uniqueSuffix() + "@example.com"
}

// SeedProfile inserts a profile with the given role.
func SeedProfile(t *testing.T, pool *pgxpool.Pool, role domain.Role) domain.Profile {
	t.Helper()

	p := domain.Profile{
		ID:    uuid.New(),
		Email: UniqueEmail(string(role)),
		Role:  role,
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO profiles (id, email, role) VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at`,
		p.ID, p.Email, string(p.Role),
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile: %v", err)
	}
	return p
}

// SeedBrief inserts a draft brief owned by ownerID.
func SeedBrief(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID) domain.Brief {
	t.Helper()

	b := domain.Brief{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Header:  "Brief " + uniqueSuffix(),
		Content: "content",
		Status:  domain.BriefStatusDraft,
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO briefs (id, owner_id, header, content) VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		b.ID, b.OwnerID, b.Header, b.Content,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedBrief: %v", err)
	}
	return b
}

// SeedRecipient shares briefID with email. recipientID may be nil for a pending invite.
func SeedRecipient(t *testing.T, pool *pgxpool.Pool, briefID, sharedBy uuid.UUID, email string, recipientID *uuid.UUID) domain.Recipient {
	t.Helper()

	r := domain.Recipient{
		ID:             uuid.New(),
		BriefID:        briefID,
		RecipientID:    recipientID,
		RecipientEmail: email,
		SharedBy:       sharedBy,
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO brief_recipients (id, brief_id, recipient_id, recipient_email, shared_by)
		 VALUES ($1, $2, $3, $4, $5) RETURNING shared_at`,
		r.ID, r.BriefID, r.RecipientID, r.RecipientEmail, r.SharedBy,
	).Scan(&r.SharedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedRecipient: %v", err)
	}
	return r
}

// SeedComment inserts a comment without touching the brief's counter.
func SeedComment(t *testing.T, pool *pgxpool.Pool, briefID, authorID uuid.UUID, content string) domain.Comment {
	t.Helper()

	c := domain.Comment{
		ID:       uuid.New(),
		BriefID:  briefID,
		AuthorID: authorID,
		Content:  content,
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO brief_comments (id, brief_id, author_id, content) VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		c.ID, c.BriefID, c.AuthorID, c.Content,
	).Scan(&c.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedComment: %v", err)
	}
	return c
}
