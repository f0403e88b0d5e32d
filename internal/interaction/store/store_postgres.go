package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"resourcehub/internal/interaction/models"
	"resourcehub/pkg/platform/sentinel"
)

// pqForeignKeyViolation is the PostgreSQL error code for FK violations.
const pqForeignKeyViolation = "23503"

// PostgresStore persists interactions in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed interaction store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save marks the resource saved for the user. The no-op DO UPDATE makes
// repeated saves succeed without a second row. An FK violation means the
// resource row vanished between the service's existence check and this write.
func (s *PostgresStore) Save(ctx context.Context, userID uuid.UUID, resourceID int64) error {
	query := `
		INSERT INTO user_saved_resources (user_id, resource_id, saved)
		VALUES ($1, $2, true)
		ON CONFLICT (user_id, resource_id) DO UPDATE SET saved = true
	`
	if _, err := s.db.ExecContext(ctx, query, userID, resourceID); err != nil {
		return translateFKViolation(err, resourceID)
	}
	return nil
}

// Unsave deletes the saved row. Deleting an absent row is a no-op success.
func (s *PostgresStore) Unsave(ctx context.Context, userID uuid.UUID, resourceID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM user_saved_resources WHERE user_id = $1 AND resource_id = $2`,
		userID, resourceID,
	)
	if err != nil {
		return fmt.Errorf("unsave resource %d: %w", resourceID, err)
	}
	return nil
}

// ListSaved returns the IDs of the user's saved resources, ascending.
func (s *PostgresStore) ListSaved(ctx context.Context, userID uuid.UUID) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT resource_id FROM user_saved_resources
		WHERE user_id = $1 AND saved
		ORDER BY resource_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved resources: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan saved resource: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// UpsertRating creates or overwrites the user's rating for a resource.
// COALESCE keeps the stored comment when the new one is null. (xmax = 0)
// distinguishes a fresh insert from an overwrite.
func (s *PostgresStore) UpsertRating(ctx context.Context, r *models.Rating) (bool, error) {
	query := `
		INSERT INTO user_ratings (user_id, resource_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, resource_id) DO UPDATE SET
			rating = EXCLUDED.rating,
			comment = COALESCE(EXCLUDED.comment, user_ratings.comment)
		RETURNING (xmax = 0) AS created
	`
	var created bool
	err := s.db.QueryRowContext(ctx, query, r.UserID, r.ResourceID, r.Rating, r.Comment).Scan(&created)
	if err != nil {
		return false, translateFKViolation(err, r.ResourceID)
	}
	return created, nil
}

// AverageRatings returns the mean rating per resource ID.
func (s *PostgresStore) AverageRatings(ctx context.Context) (map[int64]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT resource_id, AVG(rating)::float8 FROM user_ratings GROUP BY resource_id
	`)
	if err != nil {
		return nil, fmt.Errorf("average ratings: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]float64)
	for rows.Next() {
		var id int64
		var avg float64
		if err := rows.Scan(&id, &avg); err != nil {
			return nil, fmt.Errorf("scan rating average: %w", err)
		}
		out[id] = avg
	}
	return out, rows.Err()
}

// FindRating returns the user's rating for a resource, or nil when absent.
func (s *PostgresStore) FindRating(ctx context.Context, userID uuid.UUID, resourceID int64) (*models.Rating, error) {
	var r models.Rating
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, resource_id, rating, comment, created_at
		FROM user_ratings WHERE user_id = $1 AND resource_id = $2
	`, userID, resourceID).Scan(&r.UserID, &r.ResourceID, &r.Rating, &r.Comment, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find rating: %w", err)
	}
	return &r, nil
}

func translateFKViolation(err error, resourceID int64) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
		return fmt.Errorf("resource %d: %w", resourceID, sentinel.ErrNotFound)
	}
	return err
}
