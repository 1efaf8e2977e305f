package blogdesk

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Archive is an optional SQLite snapshot of the store. It is written as a
// whole on shutdown and read once at start; the in-memory Store stays the
// source of truth while the server runs.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens (or creates) the SQLite database at path, ensures the
// data directory exists, and creates the schema.
func OpenArchive(path string) (*Archive, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("blogdesk: archive dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("blogdesk: open archive: %w", err)
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("blogdesk: archive pragmas: %w", err)
	}
	db.SetMaxOpenConns(1)
	a := &Archive{db: db}
	if err := a.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("blogdesk: archive schema: %w", err)
	}
	return a, nil
}

// Close closes the underlying database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) ensureSchema() error {
	_, err := a.db.Exec(`
CREATE TABLE IF NOT EXISTS blogs (
    position INTEGER NOT NULL,
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    summary TEXT NOT NULL,
    content TEXT NOT NULL,
    cover_image TEXT NOT NULL,
    category TEXT NOT NULL,
    status TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    author_id TEXT NOT NULL,
    tags TEXT NOT NULL,
    score INTEGER
);
`)
	return err
}

// Save replaces the archived blogs with blogs in a single transaction.
func (a *Archive) Save(ctx context.Context, blogs []Blog) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("blogdesk: archive save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM blogs`); err != nil {
		return fmt.Errorf("blogdesk: archive save: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO blogs (position, id, title, summary, content, cover_image, category, status, created_at, updated_at, author_id, tags, score)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("blogdesk: archive save: %w", err)
	}
	defer stmt.Close()

	for i, b := range blogs {
		var score sql.NullInt64
		if b.Score != nil {
			score = sql.NullInt64{Int64: int64(*b.Score), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, b.ID, b.Title, b.Summary, b.Content, b.CoverImage,
			string(b.Category), string(b.Status),
			b.CreatedAt.UTC().Format(time.RFC3339Nano), b.UpdatedAt.UTC().Format(time.RFC3339Nano),
			b.AuthorID, JoinTags(b.Tags), score); err != nil {
			return fmt.Errorf("blogdesk: archive save %s: %w", b.ID, err)
		}
	}
	return tx.Commit()
}

// Load returns the archived blogs in their saved order.
func (a *Archive) Load(ctx context.Context) ([]Blog, error) {
	rows, err := a.db.QueryContext(ctx, `
SELECT id, title, summary, content, cover_image, category, status, created_at, updated_at, author_id, tags, score
FROM blogs ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("blogdesk: archive load: %w", err)
	}
	defer rows.Close()

	var blogs []Blog
	for rows.Next() {
		var (
			b                Blog
			category, status string
			created, updated string
			tags             string
			score            sql.NullInt64
		)
		if err := rows.Scan(&b.ID, &b.Title, &b.Summary, &b.Content, &b.CoverImage, &category, &status,
			&created, &updated, &b.AuthorID, &tags, &score); err != nil {
			return nil, fmt.Errorf("blogdesk: archive load: %w", err)
		}
		b.Category = Category(category)
		b.Status = Status(status)
		if b.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("blogdesk: archive load %s created_at: %w", b.ID, err)
		}
		if b.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
			return nil, fmt.Errorf("blogdesk: archive load %s updated_at: %w", b.ID, err)
		}
		b.Tags = ParseTags(tags)
		if score.Valid {
			b.Score = Ptr(int(score.Int64))
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}
