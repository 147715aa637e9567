// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite keeps the whole roster in one file and needs no server process,
// which makes it the backend for local development and for tests. Point
// DATABASE_URL at "sqlite://students.db" (or any plain file path) to use it.
//
// The blank import registers the "sqlite3" driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/types"

	// Side-effect only: registers the "sqlite3" driver.
	_ "github.com/mattn/go-sqlite3"
)

// Scheme is the URL prefix accepted in front of a SQLite file path.
const Scheme = "sqlite://"

// SQLite is the concrete implementation of storage.Storage.
// Db is a connection pool and is safe for concurrent use.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// schema is idempotent, so it runs on every startup.
//
//	id           auto-incremented primary key, never reused (AUTOINCREMENT)
//	created_at   set by SQLite at insertion time
const schema = `
	CREATE TABLE IF NOT EXISTS students (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		name         TEXT      NOT NULL,
		father_name  TEXT      NOT NULL DEFAULT '',
		mother_name  TEXT      NOT NULL DEFAULT '',
		brother_name TEXT      NOT NULL DEFAULT '',
		email        TEXT      NOT NULL,
		grade        TEXT      NOT NULL,
		created_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)
`

const selectColumns = "id, name, father_name, mother_name, brother_name, email, grade, created_at"

// New opens the SQLite database named by dsn, creates the students table
// if it does not already exist, and returns a ready-to-use *SQLite.
// A leading "sqlite://" is stripped from dsn.
func New(ctx context.Context, dsn string) (*SQLite, error) {
	path := strings.TrimPrefix(dsn, Scheme)
	if path == "" {
		return nil, errors.New("sqlite.New: empty database path")
	}

	// sql.Open only validates its arguments; the first real connection
	// happens on the first query below.
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// SQLite serialises writers anyway. One connection also keeps
	// ":memory:" databases from splitting into one database per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close closes the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateStudent inserts a new row into the students table and re-reads it,
// so the caller gets exactly what SQLite stored, including the generated
// id and created_at.
//
// Values are bound through ? placeholders and never concatenated into the
// SQL text.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreateStudent(ctx context.Context, in types.InsertStudent) (types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx, `
		INSERT INTO students (name, father_name, mother_name, brother_name, email, grade)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return types.Student{}, storage.Wrap("CreateStudent: prepare", err)
	}
	defer stmt.Close()

	// Argument order must match the ? order above.
	result, err := stmt.ExecContext(ctx,
		in.Name, in.FatherName, in.MotherName, in.BrotherName, in.Email, in.Grade)
	if err != nil {
		return types.Student{}, storage.Wrap("CreateStudent: exec", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return types.Student{}, storage.Wrap("CreateStudent: last insert id", err)
	}

	created, err := s.GetStudentByID(ctx, lastID)
	if err != nil {
		return types.Student{}, err
	}
	if created == nil {
		return types.Student{}, storage.Wrap("CreateStudent: reload",
			fmt.Errorf("row %d vanished after insert", lastID))
	}

	return *created, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetStudentByID fetches exactly one student row matched by primary key.
//
// QueryRow never returns nil; a missing row surfaces from Scan as
// sql.ErrNoRows, which we translate to (nil, nil): absence is not an error.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetStudentByID(ctx context.Context, id int64) (*types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT "+selectColumns+" FROM students WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return nil, storage.Wrap("GetStudentByID: prepare", err)
	}
	defer stmt.Close()

	student, err := scanStudent(stmt.QueryRowContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storage.Wrap("GetStudentByID: scan", err)
	}

	return &student, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetStudents returns all student rows in id order.
//
// Query returns a cursor; rows.Next advances it and rows.Err reports any
// error hit while iterating. rows.Close releases the connection.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetStudents(ctx context.Context) ([]types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT "+selectColumns+" FROM students ORDER BY id",
	)
	if err != nil {
		return nil, storage.Wrap("GetStudents: prepare", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, storage.Wrap("GetStudents: query", err)
	}
	defer rows.Close()

	// Non-nil so an empty table encodes as [] rather than null.
	students := make([]types.Student, 0)

	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, storage.Wrap("GetStudents: scan row", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, storage.Wrap("GetStudents: rows iteration", err)
	}

	return students, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanStudent reads one row in selectColumns order.
func scanStudent(row scanner) (types.Student, error) {
	var (
		student   types.Student
		createdAt sql.NullTime
	)

	err := row.Scan(
		&student.ID,
		&student.Name,
		&student.FatherName,
		&student.MotherName,
		&student.BrotherName,
		&student.Email,
		&student.Grade,
		&createdAt,
	)
	if err != nil {
		return types.Student{}, err
	}

	if createdAt.Valid {
		t := createdAt.Time.UTC()
		student.CreatedAt = &t
	}

	return student, nil
}
