package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteProblem(t *testing.T) {
	w := httptest.NewRecorder()

	WriteProblem(w, Problem{
		Type:     ProblemTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   "product 42 not found",
		Instance: "/api/v1/catalog/products/42",
	})

	resp := w.Result()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content-type = %q, want %q", ct, "application/problem+json")
	}

	var p Problem
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if p.Detail != "product 42 not found" {
		t.Errorf("detail = %q, want %q", p.Detail, "product 42 not found")
	}
	if p.Instance != "/api/v1/catalog/products/42" {
		t.Errorf("instance = %q, want %q", p.Instance, "/api/v1/catalog/products/42")
	}
}

func TestProblemHelpers(t *testing.T) {
	tests := []struct {
		name       string
		write      func(http.ResponseWriter, string, string)
		wantStatus int
		wantType   string
	}{
		{"not found", NotFound, http.StatusNotFound, ProblemTypeNotFound},
		{"bad request", BadRequest, http.StatusBadRequest, ProblemTypeBadRequest},
		{"internal", InternalError, http.StatusInternalServerError, ProblemTypeInternal},
		{"bad gateway", BadGateway, http.StatusBadGateway, ProblemTypeBadGateway},
		{"rate limited", RateLimited, http.StatusTooManyRequests, ProblemTypeRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w, "detail", "/test")

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var p Problem
			if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if p.Type != tt.wantType {
				t.Errorf("type = %q, want %q", p.Type, tt.wantType)
			}
			if p.Status != tt.wantStatus {
				t.Errorf("body status = %d, want %d", p.Status, tt.wantStatus)
			}
			if p.Title != http.StatusText(tt.wantStatus) {
				t.Errorf("title = %q, want %q", p.Title, http.StatusText(tt.wantStatus))
			}
		})
	}
}

func TestWriteProblem_OmitsEmptyOptionalFields(t *testing.T) {
	w := httptest.NewRecorder()

	WriteProblem(w, NewProblem(http.StatusInternalServerError, "", ""))

	var raw map[string]any
	_ = json.NewDecoder(w.Body).Decode(&raw)

	if _, ok := raw["detail"]; ok {
		t.Error("expected detail to be omitted when empty")
	}
	if _, ok := raw["instance"]; ok {
		t.Error("expected instance to be omitted when empty")
	}
}

func TestNewProblem_UnknownStatus(t *testing.T) {
	p := NewProblem(http.StatusConflict, "busy", "")
	if p.Type != "about:blank" {
		t.Errorf("type = %q, want about:blank", p.Type)
	}
	if p.Title != "Conflict" {
		t.Errorf("title = %q, want Conflict", p.Title)
	}
}
