package server

import (
	"encoding/json"
	"net/http"
)

// Problem types for RFC 7807 Problem Details responses.
const (
	ProblemTypeNotFound          = "https://oscars.herbhall.net/problems/not-found"
	ProblemTypeInvalidParameter  = "https://oscars.herbhall.net/problems/invalid-parameter"
	ProblemTypeSourceUnavailable = "https://oscars.herbhall.net/problems/source-unavailable"
	ProblemTypeInternal          = "https://oscars.herbhall.net/problems/internal-error"
	ProblemTypeRateLimited       = "https://oscars.herbhall.net/problems/rate-limited"
)

// Problem represents an RFC 7807 Problem Details response. Parameter is an
// extension member naming the offending query parameter.
type Problem struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail,omitempty"`
	Instance  string `json:"instance,omitempty"`
	Parameter string `json:"parameter,omitempty"`
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

// InvalidParameter writes a 400 problem response naming the parameter.
func InvalidParameter(w http.ResponseWriter, parameter, detail, instance string) {
	WriteProblem(w, Problem{
		Type:      ProblemTypeInvalidParameter,
		Title:     "Invalid Parameter",
		Status:    http.StatusBadRequest,
		Detail:    detail,
		Instance:  instance,
		Parameter: parameter,
	})
}

// SourceUnavailable writes a 503 problem response for a record source failure.
func SourceUnavailable(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, Problem{
		Type:     ProblemTypeSourceUnavailable,
		Title:    "Source Unavailable",
		Status:   http.StatusServiceUnavailable,
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
