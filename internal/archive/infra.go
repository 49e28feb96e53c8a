package archive

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS plans (
	id         UUID PRIMARY KEY,
	kind       TEXT NOT NULL,
	owner      TEXT NOT NULL DEFAULT '',
	content    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) Repo {
	return &repo{db: db}
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (r *repo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *repo) Save(ctx context.Context, rec *Record) error {
	prepare(rec)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO plans (id, kind, owner, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		rec.ID,
		string(rec.Kind),
		rec.Owner,
		rec.Content,
		rec.CreatedAt,
	)
	return err
}

func prepare(rec *Record) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
}

type nopRepo struct{}

// Nop is used when no database is configured.
func Nop() Repo { return nopRepo{} }

func (nopRepo) EnsureSchema(context.Context) error { return nil }

func (nopRepo) Save(_ context.Context, rec *Record) error {
	prepare(rec)
	return nil
}
