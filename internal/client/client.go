// Package client is the consumer side of the roster API: a typed HTTP
// client built on the routes in package api, a cached list query, a
// creation mutation and a validated form that drives them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aanand-mishra/student-roster/internal/api"
	"github.com/aanand-mishra/student-roster/internal/types"
)

// ErrNotFound is returned by GetStudent when the server answers 404.
var ErrNotFound = errors.New("student not found")

// APIError is a non-success response decoded from the server.
type APIError struct {
	Status  int
	Message string
	Field   string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("api: %d: %s (field %s)", e.Status, e.Message, e.Field)
	}
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// Client talks to a roster server. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New returns a Client for the server at baseURL, e.g.
// "http://localhost:5000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListStudents calls GET /api/students.
func (c *Client) ListStudents(ctx context.Context) ([]types.Student, error) {
	var students []types.Student
	if err := c.do(ctx, api.ListStudents, api.ListStudents.Path, nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// GetStudent calls GET /api/students/:id. A 404 is reported as ErrNotFound.
func (c *Client) GetStudent(ctx context.Context, id int64) (types.Student, error) {
	var s types.Student

	err := c.do(ctx, api.GetStudent, api.StudentURL(id), nil, &s)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return types.Student{}, ErrNotFound
	}
	return s, err
}

// CreateStudent calls POST /api/students. A rejected input comes back as an
// *APIError with Status 400 and the offending Field.
func (c *Client) CreateStudent(ctx context.Context, in types.InsertStudent) (types.Student, error) {
	var s types.Student
	if err := c.do(ctx, api.CreateStudent, api.CreateStudent.Path, in, &s); err != nil {
		return types.Student{}, err
	}
	return s, nil
}

// do sends one request for route to path and decodes the route's success
// response into out. Any other status becomes an *APIError.
func (c *Client) do(ctx context.Context, route api.Route, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", route.Name, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, route.Method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", route.Name, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", route.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != route.SuccessStatus() {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", route.Name, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body api.ValidationErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Message
		apiErr.Field = body.Field
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
