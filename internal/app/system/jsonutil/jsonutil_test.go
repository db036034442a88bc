package jsonutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		data       any
		wantStatus int
		wantBody   string
	}{
		{
			name:       "200 OK with data",
			status:     http.StatusOK,
			data:       map[string]string{"message": "hello"},
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"hello"}`,
		},
		{
			name:       "nil data",
			status:     http.StatusOK,
			data:       nil,
			wantStatus: http.StatusOK,
			wantBody:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			JSON(rec, tt.status, tt.data)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			body := strings.TrimSpace(rec.Body.String())
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	return out
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, []string{})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := decodeEnvelope(t, rec)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if _, ok := body["data"]; !ok {
		t.Error("empty list data should still be present")
	}
	if _, ok := body["error"]; ok {
		t.Error("error should be omitted on success")
	}
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]string{"title": "x"}, "created")

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "created" {
		t.Errorf("message = %v, want created", body["message"])
	}
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name       string
		fn         func(w http.ResponseWriter)
		wantStatus int
	}{
		{"BadRequest", func(w http.ResponseWriter) { BadRequest(w, "bad") }, http.StatusBadRequest},
		{"Unauthorized", func(w http.ResponseWriter) { Unauthorized(w, "no") }, http.StatusUnauthorized},
		{"NotFound", func(w http.ResponseWriter) { NotFound(w, "missing") }, http.StatusNotFound},
		{"InternalError", func(w http.ResponseWriter) { InternalError(w, "boom", "") }, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.fn(rec)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			body := decodeEnvelope(t, rec)
			if body["success"] != false {
				t.Errorf("success = %v, want false", body["success"])
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, "invalid", map[string]string{"title": "Title is required."})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var env Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Fields["title"] != "Title is required." {
		t.Errorf("fields = %v", env.Fields)
	}
	if env.Error != "validation failed" {
		t.Errorf("error = %q", env.Error)
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		page, limit   int
		total         int64
		wantPages     int
		wantNext      bool
		wantPrev      bool
	}{
		{1, 10, 0, 0, false, false},
		{1, 10, 10, 1, false, false},
		{1, 10, 11, 2, true, false},
		{2, 10, 11, 2, false, true},
		{3, 2, 7, 4, true, true},
		{5, 10, 11, 2, false, true},
	}

	for _, tt := range tests {
		p := NewPagination(tt.page, tt.limit, tt.total)
		if p.TotalPages != tt.wantPages {
			t.Errorf("NewPagination(%d,%d,%d).TotalPages = %d, want %d", tt.page, tt.limit, tt.total, p.TotalPages, tt.wantPages)
		}
		if p.HasNext != tt.wantNext {
			t.Errorf("NewPagination(%d,%d,%d).HasNext = %v, want %v", tt.page, tt.limit, tt.total, p.HasNext, tt.wantNext)
		}
		if p.HasPrev != tt.wantPrev {
			t.Errorf("NewPagination(%d,%d,%d).HasPrev = %v, want %v", tt.page, tt.limit, tt.total, p.HasPrev, tt.wantPrev)
		}
		if p.TotalProjects != tt.total {
			t.Errorf("TotalProjects = %d, want %d", p.TotalProjects, tt.total)
		}
	}
}

func TestDecode(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"title":"x"}`))
	var in struct {
		Title string `json:"title"`
	}
	if err := Decode(req, &in); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if in.Title != "x" {
		t.Errorf("Title = %q", in.Title)
	}

	req = httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader("nope")))
	if err := Decode(req, &in); err == nil {
		t.Error("Decode() should fail on invalid JSON")
	}
}
