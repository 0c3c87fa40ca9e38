package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"framecanvas-backend/internal/domains/audit/model"
)

type postgresRepository struct {
	db Querier
}

func NewPostgresRepository(db Querier) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Insert(ctx context.Context, entry *model.Entry) error {
	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("marshal audit metadata: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO audit_logs (actor_id, actor_email, action, entity, entity_id, metadata, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		RETURNING id, created_at`,
		entry.ActorID, entry.ActorEmail, entry.Action, entry.Entity, entry.EntityID, metadata, entry.IPAddress,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: insert audit entry: %v", model.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *postgresRepository) List(ctx context.Context, limit, offset int) ([]model.Entry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, actor_id, actor_email, action, entity, entity_id, metadata, COALESCE(ip_address, ''), created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list audit entries: %v", model.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		var e model.Entry
		var metadata []byte
		if err := rows.Scan(&e.ID, &e.ActorID, &e.ActorEmail, &e.Action, &e.Entity, &e.EntityID,
			&metadata, &e.IPAddress, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal audit metadata: %w", err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
