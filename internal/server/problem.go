package server

import (
	"encoding/json"
	"net/http"
)

// problemBase roots every RenewHub problem type URI.
const problemBase = "https://renewhub.dev/problems/"

// Problem type URIs, one per status the API reports.
const (
	ProblemTypeNotFound    = problemBase + "not-found"
	ProblemTypeBadRequest  = problemBase + "bad-request"
	ProblemTypeInternal    = problemBase + "internal-error"
	ProblemTypeBadGateway  = problemBase + "bad-gateway"
	ProblemTypeRateLimited = problemBase + "rate-limited"
)

var problemTypes = map[int]string{
	http.StatusNotFound:            ProblemTypeNotFound,
	http.StatusBadRequest:          ProblemTypeBadRequest,
	http.StatusInternalServerError: ProblemTypeInternal,
	http.StatusBadGateway:          ProblemTypeBadGateway,
	http.StatusTooManyRequests:     ProblemTypeRateLimited,
}

// Problem is an RFC 7807 Problem Details body.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// NewProblem builds the problem for status. The title is the standard status
// text; statuses without a RenewHub type use "about:blank".
func NewProblem(status int, detail, instance string) Problem {
	typ, ok := problemTypes[status]
	if !ok {
		typ = "about:blank"
	}
	return Problem{
		Type:     typ,
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: instance,
	}
}

// WriteProblem writes p as application/problem+json.
func WriteProblem(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func NotFound(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, NewProblem(http.StatusNotFound, detail, instance))
}

func BadRequest(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, NewProblem(http.StatusBadRequest, detail, instance))
}

func InternalError(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, NewProblem(http.StatusInternalServerError, detail, instance))
}

// BadGateway reports a failed backend call.
func BadGateway(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, NewProblem(http.StatusBadGateway, detail, instance))
}

// RateLimited reports a request rejected by the limiter. The caller sets
// Retry-After.
func RateLimited(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, NewProblem(http.StatusTooManyRequests, detail, instance))
}
