package client

import (
	"context"
	"sync"

	"github.com/aanand-mishra/student-roster/internal/types"
)

// QueryState is a snapshot of a StudentsQuery.
type QueryState struct {
	Data      []types.Student
	IsLoading bool
	Err       error
}

// StudentsQuery caches the student list: the first Fetch loads it and
// later calls reuse the cached copy until Invalidate is called.
// Concurrent fetches are not deduplicated.
type StudentsQuery struct {
	client *Client

	mu      sync.Mutex
	data    []types.Student
	loaded  bool
	loading int
	err     error
	gen     uint64 // bumped by Invalidate; stale fetches are discarded
}

// NewStudentsQuery returns an empty query bound to c.
func NewStudentsQuery(c *Client) *StudentsQuery {
	return &StudentsQuery{client: c}
}

// Fetch returns the cached list, loading it from the server first if the
// cache is empty or was invalidated.
func (q *StudentsQuery) Fetch(ctx context.Context) ([]types.Student, error) {
	q.mu.Lock()
	if q.loaded {
		data := q.data
		q.mu.Unlock()
		return data, nil
	}
	q.loading++
	gen := q.gen
	q.mu.Unlock()

	students, err := q.client.ListStudents(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.loading--

	if gen != q.gen {
		// Invalidated while in flight; keep the result for this caller
		// only and let the next Fetch reload.
		return students, err
	}

	q.err = err
	if err == nil {
		q.data = students
		q.loaded = true
	}
	return students, err
}

// Invalidate marks the cached list stale. The data stays visible through
// State until the next successful Fetch replaces it.
func (q *StudentsQuery) Invalidate() {
	q.mu.Lock()
	q.loaded = false
	q.gen++
	q.mu.Unlock()
}

// State returns the current snapshot.
func (q *StudentsQuery) State() QueryState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return QueryState{
		Data:      q.data,
		IsLoading: q.loading > 0,
		Err:       q.err,
	}
}
