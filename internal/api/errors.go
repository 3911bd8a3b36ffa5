package api

import (
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status    int
	Code      string
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("api: %d: %s", e.Status, msg)
}

// ServerMessage is the backend's message for the user, if any.
func (e *APIError) ServerMessage() string { return e.Message }

// Unauthorized reports whether the token was rejected.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// parseError extracts code and message from the error body. The backend
// answers with {"message": ...}, {"error": {"code", "message"}} or
// {"error": "..."} depending on the handler.
func parseError(status int, requestID string, body []byte) *APIError {
	e := &APIError{Status: status, RequestID: requestID}
	if !gjson.ValidBytes(body) {
		return e
	}
	root := gjson.ParseBytes(body)
	for _, path := range []string{"message", "error.message", "error", "errors.0.message"} {
		if r := root.Get(path); r.Type == gjson.String && r.String() != "" {
			e.Message = r.String()
			break
		}
	}
	for _, path := range []string{"code", "error.code"} {
		if r := root.Get(path); r.Exists() && r.String() != "" {
			e.Code = r.String()
			break
		}
	}
	return e
}
