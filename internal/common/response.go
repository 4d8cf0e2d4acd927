package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"
)

// ErrorEnvelope is the uniform body of every failed response.
// Stack is null when the responder runs in production mode.
type ErrorEnvelope struct {
	Success    bool    `json:"success"`
	Title      string  `json:"title"`
	Message    string  `json:"message"`
	StatusCode int     `json:"statusCode"`
	Stack      *string `json:"stack"`
}

// Responder renders failures as JSON envelopes. It is the last line of
// defense: it must produce a response for any error shape and never fail
// itself.
type Responder struct {
	includeStack bool
}

func NewResponder(production bool) *Responder {
	return &Responder{includeStack: !production}
}

// Error classifies err and writes the matching envelope.
func (rp *Responder) Error(w http.ResponseWriter, err error) {
	statusCode := StatusFromError(err)

	message := "An unknown error occurred"
	var appErr *Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	} else if err != nil {
		message = err.Error()
	}

	envelope := ErrorEnvelope{
		Success:    false,
		Title:      TitleForStatus(statusCode),
		Message:    message,
		StatusCode: statusCode,
	}
	if rp.includeStack {
		stack := string(debug.Stack())
		envelope.Stack = &stack
	}

	RespondWithJSON(w, statusCode, envelope)
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success": false, "title": "Server Error", "message": "Failed to marshal JSON response", "statusCode": 500, "stack": null}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
