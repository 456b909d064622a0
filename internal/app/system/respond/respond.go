// Package respond writes the uniform response envelope used by every
// endpoint: { "code": number, "message": string, "data": any | null }.
//
// Failures always go through this package too, so clients never see a bare
// framework error page.
package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Envelope is the wire shape of every response.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Issue is one validation problem, matching the boundary validator's output.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// JSON writes the envelope with the given status code.
func JSON(w http.ResponseWriter, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(Envelope{Code: code, Message: message, Data: data}); err != nil {
		zap.L().Warn("response encode failed", zap.Error(err))
	}
}

// OK writes a 200 envelope.
func OK(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, message, data)
}

// Created writes a 201 envelope.
func Created(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusCreated, message, data)
}

// BadRequest writes a 400 envelope.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, message, nil)
}

// Unauthorized writes a 401 envelope.
func Unauthorized(w http.ResponseWriter, message string) {
	JSON(w, http.StatusUnauthorized, message, nil)
}

// Forbidden writes a 403 envelope.
func Forbidden(w http.ResponseWriter, message string) {
	JSON(w, http.StatusForbidden, message, nil)
}

// NotFound writes a 404 envelope.
func NotFound(w http.ResponseWriter, message string) {
	JSON(w, http.StatusNotFound, message, nil)
}

// Conflict writes a 409 envelope.
func Conflict(w http.ResponseWriter, message string) {
	JSON(w, http.StatusConflict, message, nil)
}

// Internal writes a 500 envelope.
func Internal(w http.ResponseWriter, message string) {
	JSON(w, http.StatusInternalServerError, message, nil)
}

// Validation writes a 400 envelope whose data is the list of field issues.
func Validation(w http.ResponseWriter, issues []Issue) {
	JSON(w, http.StatusBadRequest, "Validation error", issues)
}
