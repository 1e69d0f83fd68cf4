// Package audit implements the append-only audit log repository using PostgreSQL.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/briefdesk-backend/internal/adapter/postgres"
	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

const table = "audit_log"

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID         uuid.UUID `db:"id"`
	ActorID    uuid.UUID `db:"actor_id"`
	Action     string    `db:"action"`
	EntityType string    `db:"entity_type"`
	EntityID   uuid.UUID `db:"entity_id"`
	OldData    []byte    `db:"old_data"`
	NewData    []byte    `db:"new_data"`
	CreatedAt  time.Time `db:"created_at"`
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Log appends an entry. Snapshots are stored as jsonb; nil maps become NULL.
func (r *Repo) Log(ctx context.Context, e domain.AuditEntry) error {
	if !e.Action.IsValid() {
		return domain.NewValidationError("action", "unknown audit action")
	}
	if !e.EntityType.IsValid() {
		return domain.NewValidationError("entity_type", "unknown entity type")
	}
	if e.EntityID == uuid.Nil {
		return domain.NewValidationError("entity_id", "required")
	}

	oldData, err := marshalSnapshot(e.OldData)
	if err != nil {
		return fmt.Errorf("audit marshal old_data: %w", err)
	}
	newData, err := marshalSnapshot(e.NewData)
	if err != nil {
		return fmt.Errorf("audit marshal new_data: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	_, err = postgres.Exec(ctx, q, postgres.Psql.Insert(table).
		Columns("actor_id", "action", "entity_type", "entity_id", "old_data", "new_data").
		Values(e.ActorID, string(e.Action), string(e.EntityType), e.EntityID, oldData, newData))
	if err != nil {
		return postgres.MapError(err, "audit entry for", e.EntityID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByEntity returns the history of one entity, newest first.
func (r *Repo) ListByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sel := postgres.Psql.
		Select("id", "actor_id", "action", "entity_type", "entity_id", "old_data", "new_data", "created_at").
		From(table).
		Where(sq.Eq{"entity_type": string(entityType), "entity_id": entityID}).
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit))

	var rows []row
	if err := postgres.Select(ctx, q, &rows, sel); err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}

	out := make([]domain.AuditEntry, len(rows))
	for i, rw := range rows {
		e, err := toDomain(rw)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func toDomain(r row) (domain.AuditEntry, error) {
	e := domain.AuditEntry{
		ID:         r.ID,
		ActorID:    r.ActorID,
		Action:     domain.AuditAction(r.Action),
		EntityType: domain.EntityType(r.EntityType),
		EntityID:   r.EntityID,
		CreatedAt:  r.CreatedAt,
	}
	if len(r.OldData) > 0 {
		if err := json.Unmarshal(r.OldData, &e.OldData); err != nil {
			return domain.AuditEntry{}, fmt.Errorf("audit %s unmarshal old_data: %w", r.ID, err)
		}
	}
	if len(r.NewData) > 0 {
		if err := json.Unmarshal(r.NewData, &e.NewData); err != nil {
			return domain.AuditEntry{}, fmt.Errorf("audit %s unmarshal new_data: %w", r.ID, err)
		}
	}
	return e, nil
}

func marshalSnapshot(m map[string]any) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}
