// Package response provides helpers for writing consistent JSON HTTP
// responses.
//
// Every handler answers in JSON. Error bodies always follow the shapes in
// package api:
//
//	{ "message": "Student not found" }
//	{ "message": "name is required", "field": "name" }
package response

import (
	"encoding/json"
	"net/http"

	"github.com/aanand-mishra/student-roster/internal/api"
	"github.com/aanand-mishra/student-roster/internal/types"
)

// WriteJSON writes data as JSON with the given HTTP status code.
//
// Order matters: headers, then WriteHeader, then the body. Once the status
// line is written the headers are frozen.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// Message builds the plain { "message": ... } error body.
func Message(msg string) api.ErrorBody {
	return api.ErrorBody{Message: msg}
}

// Internal is the body for every 500. The real cause is logged by the
// handler, never sent to the client.
func Internal() api.ErrorBody {
	return Message(api.MsgInternalError)
}

// ValidationError converts a failed validation into its response body.
func ValidationError(verr *types.ValidationError) api.ValidationErrorBody {
	return api.ValidationErrorBody{
		Message: verr.Message,
		Field:   verr.Field,
	}
}
