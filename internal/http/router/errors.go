package router

import (
	"net/http"

	"github.com/aanand-mishra/student-roster/internal/utils/response"
)

// jsonInternalErrors gives a 500 written without a body (as gorilla's
// RecoveryHandler does after a panic) the usual {"message": ...} body.
func jsonInternalErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dw := &deferredHeaderWriter{ResponseWriter: w}
		next.ServeHTTP(dw, r)
		dw.finish()
	})
}

// deferredHeaderWriter holds back WriteHeader until the first Write, so
// finish can still add a body to a status that was sent on its own.
type deferredHeaderWriter struct {
	http.ResponseWriter
	status  int
	flushed bool
}

func (w *deferredHeaderWriter) WriteHeader(status int) {
	if w.status == 0 && !w.flushed {
		w.status = status
	}
}

func (w *deferredHeaderWriter) Write(b []byte) (int, error) {
	w.flushHeader()
	return w.ResponseWriter.Write(b)
}

func (w *deferredHeaderWriter) flushHeader() {
	if w.flushed {
		return
	}
	w.flushed = true
	if w.status != 0 {
		w.ResponseWriter.WriteHeader(w.status)
	}
}

func (w *deferredHeaderWriter) finish() {
	if w.flushed {
		return
	}
	if w.status == http.StatusInternalServerError {
		w.flushed = true
		response.WriteJSON(w.ResponseWriter, w.status, response.Internal())
		return
	}
	w.flushHeader()
}
