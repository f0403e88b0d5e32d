package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"resourcehub/internal/auth/models"
	"resourcehub/pkg/platform/sentinel"
)

// pqUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pqUniqueViolation = "23505"

// PostgresStore persists users in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `id, email, username, phone, password_hash, is_active, is_staff, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Phone, &u.PasswordHash,
		&u.IsActive, &u.IsStaff, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user. Unique violations surface as sentinel.ErrConflict
// with the offending field named in the message.
func (s *PostgresStore) Create(ctx context.Context, u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	query := `
		INSERT INTO users (id, email, username, phone, password_hash, is_active, is_staff)
		VALUES ($1, lower($2), $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		u.ID, u.Email, u.Username, u.Phone, u.PasswordHash, u.IsActive, u.IsStaff,
	).Scan(&u.CreatedAt)
	if err != nil {
		return translateUniqueViolation(err)
	}
	return nil
}

// FindByEmail returns the user with the given email.
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = lower($1)`
	u, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", email, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FindByID returns the user with the given ID.
func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// GetOrCreateByEmail returns the user with the given email, creating it from
// the template when absent. Implemented as a single ON CONFLICT statement so
// concurrent first logins for the same email cannot race into duplicates.
// The no-op DO UPDATE makes RETURNING yield the existing row; (xmax = 0)
// distinguishes a fresh insert from a conflict hit.
func (s *PostgresStore) GetOrCreateByEmail(ctx context.Context, template *models.User) (*models.User, bool, error) {
	id := template.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	query := `
		INSERT INTO users (id, email, username, phone, password_hash, is_active, is_staff)
		VALUES ($1, lower($2), $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING ` + userColumns + `, (xmax = 0) AS created
	`
	run := func(username string) (*models.User, bool, error) {
		var u models.User
		var created bool
		err := s.db.QueryRowContext(ctx, query,
			id, template.Email, username, template.Phone, template.PasswordHash,
			template.IsActive, template.IsStaff,
		).Scan(&u.ID, &u.Email, &u.Username, &u.Phone, &u.PasswordHash,
			&u.IsActive, &u.IsStaff, &u.CreatedAt, &created)
		if err != nil {
			return nil, false, err
		}
		return &u, created, nil
	}

	u, created, err := run(template.Username)
	if err != nil {
		// The email key matched nothing but the username collided with
		// another account; retry once with a deduped username.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation &&
			strings.Contains(pqErr.Constraint, "username") {
			u, created, err = run(template.Username + "-" + id.String()[:8])
		}
	}
	if err != nil {
		return nil, false, fmt.Errorf("get or create user: %w", translateUniqueViolation(err))
	}
	return u, created, nil
}

func translateUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		switch {
		case strings.Contains(pqErr.Constraint, "email"):
			return fmt.Errorf("email already exists: %w", sentinel.ErrConflict)
		case strings.Contains(pqErr.Constraint, "username"):
			return fmt.Errorf("username already exists: %w", sentinel.ErrConflict)
		case strings.Contains(pqErr.Constraint, "phone"):
			return fmt.Errorf("phone already exists: %w", sentinel.ErrConflict)
		default:
			return fmt.Errorf("%s: %w", pqErr.Constraint, sentinel.ErrConflict)
		}
	}
	return err
}
