// Package store persists serialized documents in sqlite.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"draftinput/internal/richtext"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNotFound is returned when no document has the requested id.
var ErrNotFound = errors.New("document not found")

// Open opens (creating if needed) the sqlite database at path and applies
// pending migrations.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir db dir: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies all up migrations embedded in the binary.
func Migrate(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	// m is not closed: closing it would close db too
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Summary describes a stored document without decoding its body.
type Summary struct {
	ID        string
	Preview   string
	UpdatedAt time.Time
}

// Documents is the document repository.
type Documents struct {
	db  *sql.DB
	now func() time.Time
}

func NewDocuments(db *sql.DB) *Documents {
	return &Documents{db: db, now: func() time.Time { return time.Now().UTC().Truncate(time.Second) }}
}

// Get loads a document. A row holding SQL NULL yields a nil document and no
// error; a missing row yields ErrNotFound.
func (d *Documents) Get(ctx context.Context, id string) (*richtext.Document, error) {
	var body sql.NullString
	err := d.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	if !body.Valid {
		return nil, nil
	}
	doc, err := richtext.Parse([]byte(body.String))
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	return doc, nil
}

// Save upserts a document; nil is stored as NULL.
func (d *Documents) Save(ctx context.Context, id string, doc *richtext.Document) error {
	var body sql.NullString
	if doc != nil {
		b, err := richtext.Encode(doc)
		if err != nil {
			return fmt.Errorf("save %s: %w", id, err)
		}
		body = sql.NullString{String: string(b), Valid: true}
	}
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO documents (id, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		id, body, d.now())
	if err != nil {
		return fmt.Errorf("save %s: %w", id, err)
	}
	return nil
}

// Delete removes a document. Deleting a missing id returns ErrNotFound.
func (d *Documents) Delete(ctx context.Context, id string) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

const previewLen = 60

// List returns all documents, most recently updated first.
func (d *Documents) List(ctx context.Context) ([]Summary, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT id, body, updated_at FROM documents ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			s    Summary
			body sql.NullString
		)
		if err := rows.Scan(&s.ID, &body, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		if body.Valid {
			if doc, err := richtext.Parse([]byte(body.String)); err == nil {
				s.Preview = preview(doc.PlainText())
			}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func preview(text string) string {
	r := []rune(text)
	for i, c := range r {
		if c == '\n' {
			r[i] = ' '
		}
	}
	if len(r) > previewLen {
		return string(r[:previewLen-1]) + "…"
	}
	return string(r)
}
