// Package api is the single description of the HTTP contract. The server
// registers its routes from these values and the client builds its request
// URLs from the same values, so the two cannot drift apart.
package api

import (
	"fmt"
	"net/http"
	"strings"
)

// Route describes one endpoint. Path uses ":name" placeholders for path
// parameters, e.g. "/api/students/:id".
type Route struct {
	Name   string
	Method string
	Path   string

	// Responses maps each documented status code to a short description
	// of the body returned with it.
	Responses map[int]string
}

// Pattern renders the route as a Go 1.22 ServeMux pattern:
//
//	GET /api/students/:id  →  "GET /api/students/{id}"
func (r Route) Pattern() string {
	segments := strings.Split(r.Path, "/")
	for i, s := range segments {
		if strings.HasPrefix(s, ":") && len(s) > 1 {
			segments[i] = "{" + s[1:] + "}"
		}
	}
	return r.Method + " " + strings.Join(segments, "/")
}

// SuccessStatus returns the lowest 2xx code listed in Responses, or 200 if
// none is listed.
func (r Route) SuccessStatus() int {
	best := 0
	for code := range r.Responses {
		if code >= 200 && code < 300 && (best == 0 || code < best) {
			best = code
		}
	}
	if best == 0 {
		return http.StatusOK
	}
	return best
}

// URL is shorthand for BuildURL(r.Path, params).
func (r Route) URL(params map[string]string) string {
	return BuildURL(r.Path, params)
}

// Student routes.
var (
	ListStudents = Route{
		Name:   "students.list",
		Method: http.MethodGet,
		Path:   "/api/students",
		Responses: map[int]string{
			http.StatusOK:                  "array of Student",
			http.StatusInternalServerError: "ErrorBody",
		},
	}

	GetStudent = Route{
		Name:   "students.get",
		Method: http.MethodGet,
		Path:   "/api/students/:id",
		Responses: map[int]string{
			http.StatusOK:                  "Student",
			http.StatusBadRequest:          "ErrorBody",
			http.StatusNotFound:            "ErrorBody",
			http.StatusInternalServerError: "ErrorBody",
		},
	}

	CreateStudent = Route{
		Name:   "students.create",
		Method: http.MethodPost,
		Path:   "/api/students",
		Responses: map[int]string{
			http.StatusCreated:             "Student",
			http.StatusBadRequest:          "ValidationErrorBody",
			http.StatusInternalServerError: "ErrorBody",
		},
	}
)

// Routes lists every endpoint in registration order.
var Routes = []Route{ListStudents, GetStudent, CreateStudent}

// Fixed client-facing messages.
const (
	MsgInvalidStudentID = "Invalid student ID"
	MsgStudentNotFound  = "Student not found"
	MsgInternalError    = "Internal server error"
)

// ErrorBody is returned for not-found, bad-id and internal errors.
type ErrorBody struct {
	Message string `json:"message"`
}

// ValidationErrorBody is returned when a creation request fails validation.
type ValidationErrorBody struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// BuildURL substitutes ":name" placeholders in path with the matching
// values from params. Only the first occurrence of each placeholder is
// replaced. Params without a placeholder are ignored and placeholders
// without a param are left as they are.
func BuildURL(path string, params map[string]string) string {
	url := path
	for key, value := range params {
		placeholder := ":" + key
		if strings.Contains(url, placeholder) {
			url = strings.Replace(url, placeholder, value, 1)
		}
	}
	return url
}

// StudentURL builds the GetStudent path for id.
func StudentURL(id int64) string {
	return GetStudent.URL(map[string]string{"id": fmt.Sprint(id)})
}
