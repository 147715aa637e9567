// Package student contains the HTTP handlers for the Student resource.
//
// Each handler is built by a factory that receives its dependencies and
// returns the http.HandlerFunc the router needs:
//
//	router.HandleFunc(api.CreateStudent.Pattern(), student.New(store))
//
// New(store) runs once at startup; the returned closure runs on every
// request and keeps no state between requests.
package student

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/student-roster/internal/api"
	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/types"
	"github.com/aanand-mishra/student-roster/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
// Creates a new student from the JSON request body.
//
// Request body (JSON):
//
//	{ "name": "Alice Johnson", "fatherName": "John Johnson",
//	  "motherName": "Mary Johnson", "brotherName": "Jack Johnson",
//	  "email": "alice@example.com", "grade": "10th Grade" }
//
// Success response (201 Created): the stored student, including id and
// createdAt.
//
// Error responses:
//
//	400 Bad Request  { message, field }  empty body, bad JSON, failed rule
//	500 Internal     { message }         database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		input, verr := types.DecodeInsertStudent(r.Body)
		if verr != nil {
			slog.Debug("rejected student input",
				slog.String("field", verr.Field),
				slog.String("message", verr.Message))
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(verr))
			return
		}

		created, err := store.CreateStudent(r.Context(), input)
		if err != nil {
			slog.Error("failed to create student", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.Internal())
			return
		}

		slog.Info("student created", slog.Int64("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/students/{id}
//
// Error responses:
//
//	400 Bad Request  id is not an integer     "Invalid student ID"
//	404 Not Found    no student with that id  "Student not found"
//	500 Internal     database error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a student", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.Message(api.MsgInvalidStudentID))
			return
		}

		student, err := store.GetStudentByID(r.Context(), intID)
		if err != nil {
			slog.Error("failed to get student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.Internal())
			return
		}

		if student == nil {
			response.WriteJSON(w, http.StatusNotFound, response.Message(api.MsgStudentNotFound))
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// GetList handles GET /api/students and returns every student as a JSON
// array ([] when there are none).
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := store.GetStudents(r.Context())
		if err != nil {
			slog.Error("failed to list students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.Internal())
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}
