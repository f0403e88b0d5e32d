package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"resourcehub/internal/catalog/models"
	"resourcehub/pkg/platform/sentinel"
)

// PostgresStore persists the catalog in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed catalog store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// UpsertTag creates or updates the tag keyed by external_id. (xmax = 0) on the
// returned row distinguishes a fresh insert from an update.
func (s *PostgresStore) UpsertTag(ctx context.Context, t *models.Tag) (bool, error) {
	query := `
		INSERT INTO tags (external_id, label)
		VALUES ($1, $2)
		ON CONFLICT (external_id) DO UPDATE SET label = EXCLUDED.label
		RETURNING id, (xmax = 0) AS created
	`
	var created bool
	if err := s.db.QueryRowContext(ctx, query, t.ExternalID, t.Label).Scan(&t.ID, &created); err != nil {
		return false, fmt.Errorf("upsert tag %d: %w", t.ExternalID, err)
	}
	return created, nil
}

// UpsertResource creates or updates the resource keyed by external_id.
func (s *PostgresStore) UpsertResource(ctx context.Context, r *models.Resource) (bool, error) {
	query := `
		INSERT INTO resources (external_id, author, name, url, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (external_id) DO UPDATE SET
			author = EXCLUDED.author,
			name = EXCLUDED.name,
			url = EXCLUDED.url,
			created_at = EXCLUDED.created_at
		RETURNING id, (xmax = 0) AS created
	`
	var created bool
	err := s.db.QueryRowContext(ctx, query,
		r.ExternalID, r.Author, r.Name, r.URL, r.CreatedAt,
	).Scan(&r.ID, &created)
	if err != nil {
		return false, fmt.Errorf("upsert resource %d: %w", r.ExternalID, err)
	}
	return created, nil
}

// SetResourceTags replaces the resource's tag set with the tags matching the
// given external IDs. External IDs with no matching tag row are dropped
// silently. Runs in one transaction so readers never see a half-replaced set.
func (s *PostgresStore) SetResourceTags(ctx context.Context, resourceExternalID int64, tagExternalIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set resource tags: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var resourceID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM resources WHERE external_id = $1`, resourceExternalID,
	).Scan(&resourceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("resource with external id %d: %w", resourceExternalID, sentinel.ErrNotFound)
		}
		return fmt.Errorf("resolve resource %d: %w", resourceExternalID, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM resource_tags WHERE resource_id = $1`, resourceID,
	); err != nil {
		return fmt.Errorf("clear resource tags: %w", err)
	}

	if len(tagExternalIDs) > 0 {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO resource_tags (resource_id, tag_id)
			SELECT $1, id FROM tags WHERE external_id = ANY($2)
		`, resourceID, pq.Array(tagExternalIDs)); err != nil {
			return fmt.Errorf("set resource tags: %w", err)
		}
	}

	return tx.Commit()
}

// ListTags returns all tags in insertion order.
func (s *PostgresStore) ListTags(ctx context.Context) ([]models.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, external_id, label FROM tags ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var out []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.ExternalID, &t.Label); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListResources returns all resources in insertion order with tag labels
// resolved, tags ordered by tag id.
func (s *PostgresStore) ListResources(ctx context.Context) ([]models.Resource, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, external_id, author, name, url, created_at
		FROM resources ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	var out []models.Resource
	index := make(map[int64]int)
	for rows.Next() {
		var r models.Resource
		if err := rows.Scan(&r.ID, &r.ExternalID, &r.Author, &r.Name, &r.URL, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		r.Tags = []string{}
		index[r.ID] = len(out)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tagRows, err := s.db.QueryContext(ctx, `
		SELECT rt.resource_id, t.label
		FROM resource_tags rt
		JOIN tags t ON t.id = rt.tag_id
		ORDER BY rt.resource_id, t.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list resource tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var resourceID int64
		var label string
		if err := tagRows.Scan(&resourceID, &label); err != nil {
			return nil, fmt.Errorf("scan resource tag: %w", err)
		}
		if i, ok := index[resourceID]; ok {
			out[i].Tags = append(out[i].Tags, label)
		}
	}
	return out, tagRows.Err()
}

// FindResourceByID returns the resource with the given internal ID.
func (s *PostgresStore) FindResourceByID(ctx context.Context, id int64) (*models.Resource, error) {
	var r models.Resource
	err := s.db.QueryRowContext(ctx, `
		SELECT id, external_id, author, name, url, created_at
		FROM resources WHERE id = $1
	`, id).Scan(&r.ID, &r.ExternalID, &r.Author, &r.Name, &r.URL, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("resource %d: %w", id, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find resource: %w", err)
	}

	tagRows, err := s.db.QueryContext(ctx, `
		SELECT t.label
		FROM resource_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.resource_id = $1
		ORDER BY t.id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("find resource tags: %w", err)
	}
	defer tagRows.Close()

	r.Tags = []string{}
	for tagRows.Next() {
		var label string
		if err := tagRows.Scan(&label); err != nil {
			return nil, fmt.Errorf("scan resource tag: %w", err)
		}
		r.Tags = append(r.Tags, label)
	}
	return &r, tagRows.Err()
}
