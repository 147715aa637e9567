// Package router wires the student handlers to the routes declared in
// package api and wraps them with the shared middleware.
package router

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"

	"github.com/aanand-mishra/student-roster/internal/api"
	"github.com/aanand-mishra/student-roster/internal/http/handlers/student"
	"github.com/aanand-mishra/student-roster/internal/storage"
)

// Options configures the middleware around the routes.
type Options struct {
	// AllowedOrigins is passed to the CORS middleware. Empty means "*".
	AllowedOrigins []string

	// Logger receives recovered panics. Defaults to slog.Default().
	Logger *slog.Logger
}

// New returns the application handler for every route in api.Routes:
//
//	GET  /api/students       list every student
//	GET  /api/students/{id}  get one student by id
//	POST /api/students       create a student
func New(store storage.Storage, opts Options) http.Handler {
	handlersByName := map[string]http.HandlerFunc{
		api.ListStudents.Name:  student.GetList(store),
		api.GetStudent.Name:    student.GetByID(store),
		api.CreateStudent.Name: student.New(store),
	}

	mux := http.NewServeMux()
	for _, route := range api.Routes {
		h, ok := handlersByName[route.Name]
		if !ok {
			panic("router: no handler for route " + route.Name)
		}
		mux.HandleFunc(route.Pattern(), h)
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)),
		handlers.PrintRecoveryStack(true),
	)

	return jsonInternalErrors(recovery(cors(mux)))
}
