package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jemalhussen/template-market-bot/types"
	"github.com/pressly/goose/v3"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrNoAdmin          = errors.New("no admin registered")
)

// adminConfigKey is the fixed key of the singleton admin record.
const adminConfigKey = "admin_user"

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = buildPostgresDSNFromEnv()
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{pool: pool}
	if err := s.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func buildPostgresDSNFromEnv() string {
	host := strings.TrimSpace(os.Getenv("POSTGRES_HOST"))
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(os.Getenv("POSTGRES_PORT"))
	if port == "" {
		port = "5432"
	}
	db := strings.TrimSpace(os.Getenv("POSTGRES_DB"))
	if db == "" {
		db = "template_market"
	}
	user := strings.TrimSpace(os.Getenv("POSTGRES_USER"))
	if user == "" {
		user = "template_market"
	}
	pass := os.Getenv("POSTGRES_PASSWORD")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", urlEscape(user), urlEscape(pass), host, port, db)
}

func urlEscape(s string) string {
	r := strings.NewReplacer(
		"%", "%25",
		":", "%3A",
		"/", "%2F",
		"@", "%40",
		"?", "%3F",
		"#", "%23",
		"[", "%5B",
		"]", "%5D",
	)
	return r.Replace(s)
}

func (s *PostgresStore) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDB(*s.pool.Config().ConnConfig)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "migrations")
}

func (s *PostgresStore) GetTemplate(id string) (*types.Template, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var t types.Template
	err := s.pool.QueryRow(ctx, `
SELECT id, name, description, price, image_drive_link, preview_link, zip_drive_link, website_zip, status, created_at, updated_at
FROM templates
WHERE id = $1
`, id).Scan(&t.ID, &t.Name, &t.Description, &t.Price, &t.ImageDriveLink, &t.PreviewLink, &t.ZipDriveLink, &t.WebsiteZip, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *PostgresStore) ListTemplatesByStatus(status types.TemplateStatus) ([]*types.Template, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rows, err := s.pool.Query(ctx, `
SELECT id, name, description, price, image_drive_link, preview_link, zip_drive_link, website_zip, status, created_at, updated_at
FROM templates
WHERE status = $1
ORDER BY created_at
`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]*types.Template, 0)
	for rows.Next() {
		var t types.Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Price, &t.ImageDriveLink, &t.PreviewLink, &t.ZipDriveLink, &t.WebsiteZip, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, &t)
	}
	return templates, rows.Err()
}

func (s *PostgresStore) UpdateTemplateStatus(id string, status types.TemplateStatus) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tag, err := s.pool.Exec(ctx, `
UPDATE templates
SET status = $2, updated_at = NOW()
WHERE id = $1
`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (s *PostgresStore) MarkTemplateWaiting(id string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tag, err := s.pool.Exec(ctx, `
UPDATE templates
SET status = $2, updated_at = NOW()
WHERE id = $1 AND status = $3
`, id, types.StatusWaiting, types.StatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) GetAdminChatID() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var chatID int64
	err := s.pool.QueryRow(ctx, `
SELECT chat_id
FROM admin_config
WHERE key = $1
`, adminConfigKey).Scan(&chatID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNoAdmin
	}
	if err != nil {
		return 0, err
	}
	return chatID, nil
}

// SetAdminChatID registers the admin identity. Last writer wins: a new
// registration silently supersedes the previous one.
func (s *PostgresStore) SetAdminChatID(chatID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := s.pool.Exec(ctx, `
INSERT INTO admin_config (key, chat_id)
VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET
  chat_id = EXCLUDED.chat_id,
  updated_at = NOW();
`, adminConfigKey, chatID)
	return err
}
