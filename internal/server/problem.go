package server

import (
	"encoding/json"
	"net/http"
)

// Problem types for RFC 7807 Problem Details responses.
const (
	ProblemTypeNotFound    = "https://gutwise.app/problems/not-found"
	ProblemTypeBadRequest  = "https://gutwise.app/problems/bad-request"
	ProblemTypeValidation  = "https://gutwise.app/problems/validation-failed"
	ProblemTypeInternal    = "https://gutwise.app/problems/internal-error"
	ProblemTypeRateLimited = "https://gutwise.app/problems/rate-limited"
	ProblemTypeConflict    = "https://gutwise.app/problems/conflict"
)

// Problem represents an RFC 7807 Problem Details response. Errors is an
// extension member carrying per-field validation messages.
// @Description RFC 7807 Problem Details error response.
type Problem struct {
	Type     string            `json:"type" example:"https://gutwise.app/problems/not-found"`
	Title    string            `json:"title" example:"Not Found"`
	Status   int               `json:"status" example:"404"`
	Detail   string            `json:"detail,omitempty" example:"Recipe not found"`
	Instance string            `json:"instance,omitempty" example:"/api/recipes/42"`
	Errors   map[string]string `json:"errors,omitempty"`
}

// WriteProblem writes an RFC 7807 Problem Details JSON response.
func WriteProblem(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// NotFound writes a 404 problem response.
func NotFound(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, Problem{
		Type:     ProblemTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: instance,
	})
}

// BadRequest writes a 400 problem response.
func BadRequest(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, Problem{
		Type:     ProblemTypeBadRequest,
		Title:    "Bad Request",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: instance,
	})
}

// ValidationFailed writes a 400 problem response listing the invalid fields.
func ValidationFailed(w http.ResponseWriter, fields map[string]string, instance string) {
	WriteProblem(w, Problem{
		Type:     ProblemTypeValidation,
		Title:    "Validation Failed",
		Status:   http.StatusBadRequest,
		Detail:   "one or more fields are invalid",
		Instance: instance,
		Errors:   fields,
	})
}

// Conflict writes a 409 problem response.
func Conflict(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, Problem{
		Type:     ProblemTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: instance,
	})
}

// InternalError writes a 500 problem response.
func InternalError(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, Problem{
		Type:     ProblemTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: instance,
	})
}

// RateLimited writes a 429 problem response.
func RateLimited(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, Problem{
		Type:     ProblemTypeRateLimited,
		Title:    "Too Many Requests",
		Status:   http.StatusTooManyRequests,
		Detail:   detail,
		Instance: instance,
	})
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
