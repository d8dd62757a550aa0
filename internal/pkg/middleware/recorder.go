package middleware

import "net/http"

// StatusRecorder envolve um http.ResponseWriter e guarda o status enviado ao cliente.
// Sem WriteHeader explícito o status é 200.
type StatusRecorder struct {
	http.ResponseWriter
	Status int
}

// NewStatusRecorder cria um StatusRecorder sobre w.
func NewStatusRecorder(w http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
}

func (r *StatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

// Unwrap permite que http.ResponseController alcance o writer original.
func (r *StatusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
