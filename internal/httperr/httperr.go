// Package httperr defines the service error taxonomy and the JSON response
// envelope shared by all handlers.
package httperr

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type Kind int

const (
	KindValidation Kind = iota // malformed or missing client input
	KindAuth                   // missing or invalid token
	KindTokenExpired           // expired token, distinguishable from KindAuth
	KindNotFound               // resource absent or not owned by the caller
	KindInternal               // store or unexpected failure
)

// Error carries an error kind, the HTTP status it maps to and a
// client-facing message.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

func Auth(msg string) *Error {
	return &Error{Kind: KindAuth, Status: http.StatusUnauthorized, Message: msg}
}

func TokenExpired() *Error {
	return &Error{Kind: KindTokenExpired, Status: http.StatusUnauthorized, Message: "Token expired"}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: msg}
}

func Internal() *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: "Internal Server Error"}
}

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteOK writes the standard success envelope {<key>: payload, "message": msg}.
func WriteOK(w http.ResponseWriter, status int, key string, payload any, msg string) {
	WriteJSON(w, status, map[string]any{key: payload, "message": msg})
}

// Write converts err to a response. Tagged *Error values map to their status
// and message; anything else is logged and surfaced as a generic 500 so
// internal detail never reaches the client.
func Write(w http.ResponseWriter, logger *zap.SugaredLogger, err error) {
	he, ok := err.(*Error)
	if !ok {
		logger.Errorw("unhandled error", "err", err)
		he = Internal()
	}
	WriteJSON(w, he.Status, map[string]string{"message": he.Message})
}
