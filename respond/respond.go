// Package respond writes the API's JSON responses. Every rejected
// request carries the same {"error", "message"} body shape.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Message writes a {"message": ...} body.
func Message(w http.ResponseWriter, status int, format string, args ...interface{}) {
	JSON(w, status, map[string]string{"message": fmt.Sprintf(format, args...)})
}

// Error writes an error body with the given status.
func Error(w http.ResponseWriter, status int, errName, format string, args ...interface{}) {
	JSON(w, status, errorBody{Error: errName, Message: fmt.Sprintf(format, args...)})
}

func BadRequest(w http.ResponseWriter, format string, args ...interface{}) {
	Error(w, http.StatusBadRequest, "Bad Request", format, args...)
}

func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized", "User not found or token is invalid")
}

func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden", "Not authorized to access this resource")
}

func NotFound(w http.ResponseWriter, format string, args ...interface{}) {
	Error(w, http.StatusNotFound, "Not Found", format, args...)
}

func Conflict(w http.ResponseWriter, format string, args ...interface{}) {
	Error(w, http.StatusConflict, "Conflict", format, args...)
}

func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal Server Error", "Something went wrong")
}
