package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Naman-Bagoria17/shortify/internal/model"
	"github.com/Naman-Bagoria17/shortify/internal/storage"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Storage implements storage.LinkStore and storage.UserStore on PostgreSQL.
type Storage struct {
	pool *pgxpool.Pool
}

// NewStorage connects to the database, verifies the connection and creates
// the schema if it does not exist yet.
func NewStorage(ctx context.Context, dsn string) (*Storage, error) {
	if dsn == "" {
		return nil, errors.New("database connection string is empty")
	}

	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	s := &Storage{pool: pool}
	if err := s.createSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

func (s *Storage) createSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			avatar_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email);

		CREATE TABLE IF NOT EXISTS links (
			id UUID PRIMARY KEY,
			target_url TEXT NOT NULL,
			slug VARCHAR(64) NOT NULL,
			clicks BIGINT NOT NULL DEFAULT 0,
			user_id UUID REFERENCES users(id),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_links_slug ON links(slug);
	`

	_, err := s.pool.Exec(ctx, schema)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// SaveLink inserts a new short link. The unique index on slug is the sole
// defense against collisions: a violation is reported as ErrSlugExists.
func (s *Storage) SaveLink(ctx context.Context, link *model.ShortLink) error {
	var owner interface{}
	if link.UserID != "" {
		owner = link.UserID
	}

	query := `INSERT INTO links (id, target_url, slug, clicks, user_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.pool.Exec(ctx, query, link.ID, link.TargetURL, link.Slug, link.Clicks, owner, link.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrSlugExists
		}
		return fmt.Errorf("error inserting link: %w", err)
	}

	return nil
}

// ResolveSlug atomically increments the click counter and returns the
// target URL. The lookup and the increment are a single UPDATE, so
// concurrent redirects for the same slug never lose counts.
func (s *Storage) ResolveSlug(ctx context.Context, slug string) (string, bool, error) {
	query := `UPDATE links SET clicks = clicks + 1 WHERE slug = $1 RETURNING target_url`

	var targetURL string
	err := s.pool.QueryRow(ctx, query, slug).Scan(&targetURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("error resolving slug: %w", err)
	}

	return targetURL, true, nil
}

// GetLinkByID fetches a single link by its id.
func (s *Storage) GetLinkByID(ctx context.Context, id string) (*model.ShortLink, error) {
	query := `SELECT id, target_url, slug, clicks, user_id, created_at FROM links WHERE id = $1`

	link := &model.ShortLink{}
	var owner *string
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&link.ID, &link.TargetURL, &link.Slug, &link.Clicks, &owner, &link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("error querying link: %w", err)
	}

	if owner != nil {
		link.UserID = *owner
	}
	return link, nil
}

// DeleteLink removes a link by id.
func (s *Storage) DeleteLink(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GetLinksByUser returns all links owned by the user, newest first.
func (s *Storage) GetLinksByUser(ctx context.Context, userID string) ([]*model.ShortLink, error) {
	query := `SELECT id, target_url, slug, clicks, created_at FROM links
	          WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying user links: %w", err)
	}
	defer rows.Close()

	var links []*model.ShortLink
	for rows.Next() {
		link := &model.ShortLink{UserID: userID}
		if err := rows.Scan(&link.ID, &link.TargetURL, &link.Slug, &link.Clicks, &link.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning link row: %w", err)
		}
		links = append(links, link)
	}

	return links, rows.Err()
}

// CreateUser inserts a new user. The unique index on email reports a
// duplicate registration as ErrEmailExists.
func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, name, email, password_hash, avatar_url, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.pool.Exec(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, user.AvatarURL, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrEmailExists
		}
		return fmt.Errorf("error inserting user: %w", err)
	}

	return nil
}

// GetUserByEmail fetches a user by email, including the password hash.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, name, email, password_hash, avatar_url, created_at FROM users WHERE email = $1`
	return s.scanUser(s.pool.QueryRow(ctx, query, email))
}

// GetUserByID fetches a user by id.
func (s *Storage) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT id, name, email, password_hash, avatar_url, created_at FROM users WHERE id = $1`
	return s.scanUser(s.pool.QueryRow(ctx, query, id))
}

func (s *Storage) scanUser(row pgx.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.AvatarURL, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return user, nil
}

// Ping verifies the database connection.
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
