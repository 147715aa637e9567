// Package postgres is the production storage.Storage implementation,
// backed by a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/types"
)

const schema = `
	CREATE TABLE IF NOT EXISTS students (
		id           SERIAL PRIMARY KEY,
		name         TEXT NOT NULL,
		father_name  TEXT NOT NULL DEFAULT '',
		mother_name  TEXT NOT NULL DEFAULT '',
		brother_name TEXT NOT NULL DEFAULT '',
		email        TEXT NOT NULL,
		grade        TEXT NOT NULL,
		created_at   TIMESTAMP DEFAULT NOW()
	);
	ALTER TABLE students ADD COLUMN IF NOT EXISTS father_name  TEXT NOT NULL DEFAULT '';
	ALTER TABLE students ADD COLUMN IF NOT EXISTS mother_name  TEXT NOT NULL DEFAULT '';
	ALTER TABLE students ADD COLUMN IF NOT EXISTS brother_name TEXT NOT NULL DEFAULT ''
`

const selectColumns = "id, name, father_name, mother_name, brother_name, email, grade, created_at"

// Postgres holds the process-wide pool. It is created once in main and
// passed to the handlers through the storage.Storage interface.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ storage.Storage = (*Postgres)(nil)

// IsURL reports whether dsn is a PostgreSQL connection URL.
func IsURL(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// New creates a connection pool for connectionString, verifies it with a
// ping and makes sure the students table exists.
func New(ctx context.Context, connectionString string) (*Postgres, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	pool, err := pgxpool.New(ctx, connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// The schema contains several statements; run them one at a time like
	// a migration so each gets its own error.
	for i, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to apply schema (statement %d): %w", i+1, err)
		}
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the pool. It always returns nil.
func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// GetStudents returns every student in id order, or an empty slice.
func (p *Postgres) GetStudents(ctx context.Context) ([]types.Student, error) {
	rows, err := p.pool.Query(ctx, "SELECT "+selectColumns+" FROM students ORDER BY id")
	if err != nil {
		return nil, storage.Wrap("GetStudents: query", err)
	}

	students, err := pgx.CollectRows(rows, scanStudent)
	if err != nil {
		return nil, storage.Wrap("GetStudents: scan", err)
	}
	if students == nil {
		students = make([]types.Student, 0)
	}
	return students, nil
}

// GetStudentByID fetches one student by primary key. A missing row is
// reported as (nil, nil).
func (p *Postgres) GetStudentByID(ctx context.Context, id int64) (*types.Student, error) {
	rows, err := p.pool.Query(ctx, "SELECT "+selectColumns+" FROM students WHERE id = $1", id)
	if err != nil {
		return nil, storage.Wrap("GetStudentByID: query", err)
	}

	student, err := pgx.CollectOneRow(rows, scanStudent)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, storage.Wrap("GetStudentByID: scan", err)
	}
	return &student, nil
}

// CreateStudent inserts in and returns the stored row via RETURNING, so
// id and created_at come straight from the database in one round trip.
func (p *Postgres) CreateStudent(ctx context.Context, in types.InsertStudent) (types.Student, error) {
	rows, err := p.pool.Query(ctx, `
		INSERT INTO students (name, father_name, mother_name, brother_name, email, grade)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+selectColumns,
		in.Name, in.FatherName, in.MotherName, in.BrotherName, in.Email, in.Grade,
	)
	if err != nil {
		return types.Student{}, storage.Wrap("CreateStudent: insert", err)
	}

	student, err := pgx.CollectOneRow(rows, scanStudent)
	if err != nil {
		return types.Student{}, storage.Wrap("CreateStudent: scan", err)
	}
	return student, nil
}

// scanStudent reads one row in selectColumns order.
func scanStudent(row pgx.CollectableRow) (types.Student, error) {
	var s types.Student
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.FatherName,
		&s.MotherName,
		&s.BrotherName,
		&s.Email,
		&s.Grade,
		&s.CreatedAt,
	)
	if err == nil && s.CreatedAt != nil {
		t := s.CreatedAt.UTC()
		s.CreatedAt = &t
	}
	return s, err
}
