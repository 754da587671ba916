package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the wire shape for every failure response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// ResponseJSON writes a JSON body with the given status code.
func ResponseJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, payload any) {
	ResponseJSON(w, http.StatusOK, payload)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, payload any) {
	ResponseJSON(w, http.StatusCreated, payload)
}

// ------------- Error responses -------------

// ResponseError writes {"error", "message"} with the given status code.
func ResponseError(w http.ResponseWriter, code int, errCode, message string) {
	ResponseJSON(w, code, ErrorBody{Error: errCode, Message: message})
}

// ResponseValidation returns 400 with field-level details.
func ResponseValidation(w http.ResponseWriter, details any) {
	ResponseJSON(w, http.StatusBadRequest, ErrorBody{Error: "validation_failed", Details: details})
}

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusBadRequest, "bad_request", message)
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusUnauthorized, "unauthorized", message)
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusForbidden, "forbidden", message)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusNotFound, "not_found", message)
}

// returns 409 Conflict
func ResponseConflict(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusConflict, "slot_taken", message)
}

// returns 429 Too Many Requests
func ResponseTooManyRequests(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusTooManyRequests, "rate_limited", message)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusInternalServerError, "internal_error", message)
}

// returns 503 Service Unavailable
func ResponseServiceUnavailable(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusServiceUnavailable, "storage_unavailable", message)
}
