// Package storage defines the Storage interface: the contract any database
// backend must satisfy to work with this application, and the only way the
// rest of the code touches persisted students.
//
// Handlers depend on this interface, never on a concrete database. Tests
// pass a fake that satisfies it; main picks exactly one real backend at
// startup.
package storage

import (
	"context"
	"fmt"

	"github.com/aanand-mishra/student-roster/internal/types"
)

// Storage is the database contract.
type Storage interface {
	// GetStudents returns every student in primary-key order.
	// Returns an empty slice (not nil) if there are no students.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// GetStudentByID fetches a single student by primary key.
	// Returns nil and a nil error if no such student exists.
	GetStudentByID(ctx context.Context, id int64) (*types.Student, error)

	// CreateStudent inserts a new row and returns it with the store-assigned
	// ID and CreatedAt. The input is expected to be validated already.
	CreateStudent(ctx context.Context, in types.InsertStudent) (types.Student, error)

	// Close releases the underlying connection pool.
	Close() error
}

// Error is returned by backends when the underlying store fails or rejects
// an operation. Handlers turn it into a 500 without exposing Err.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap returns a *Error for op, or nil if err is nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
