package middlewares

import "net/http"

// statusRecorder is a wrapper around http.ResponseWriter that captures the status code and response size.
type statusRecorder struct {
	http.ResponseWriter
	statusCode   int
	responseSize int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w}
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.statusCode == 0 {
		rec.statusCode = code
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(data []byte) (int, error) {
	if rec.statusCode == 0 {
		rec.statusCode = http.StatusOK // Default status code if WriteHeader is not called
	}
	n, err := rec.ResponseWriter.Write(data)
	rec.responseSize += n
	return n, err
}

func (rec *statusRecorder) status() int {
	if rec.statusCode == 0 {
		return http.StatusOK
	}
	return rec.statusCode
}

func (rec *statusRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}
