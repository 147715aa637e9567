package client

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/aanand-mishra/student-roster/internal/types"
)

// ErrMutationInFlight is returned when a creation is submitted while the
// previous one has not finished.
var ErrMutationInFlight = errors.New("a create request is already in flight")

// CreateStudentMutation submits creation requests one at a time.
type CreateStudentMutation struct {
	client    *Client
	query     *StudentsQuery
	onSuccess func(types.Student)

	pending atomic.Bool
}

// NewCreateStudentMutation returns a mutation that, after each successful
// create, invalidates query (if non-nil) and calls onSuccess (if non-nil).
func NewCreateStudentMutation(c *Client, query *StudentsQuery, onSuccess func(types.Student)) *CreateStudentMutation {
	return &CreateStudentMutation{client: c, query: query, onSuccess: onSuccess}
}

// Mutate sends in to the server. It does not validate in; the form does
// that before calling.
func (m *CreateStudentMutation) Mutate(ctx context.Context, in types.InsertStudent) (types.Student, error) {
	if !m.pending.CompareAndSwap(false, true) {
		return types.Student{}, ErrMutationInFlight
	}
	defer m.pending.Store(false)

	created, err := m.client.CreateStudent(ctx, in)
	if err != nil {
		return types.Student{}, err
	}

	if m.query != nil {
		m.query.Invalidate()
	}
	if m.onSuccess != nil {
		m.onSuccess(created)
	}
	return created, nil
}

// IsPending reports whether a request is in flight.
func (m *CreateStudentMutation) IsPending() bool {
	return m.pending.Load()
}
