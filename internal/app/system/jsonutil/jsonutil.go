// Package jsonutil provides helper functions for JSON API responses.
//
// Every API response uses the same envelope:
//
//	{ "success": bool, "data": ..., "message": "...", "error": "...",
//	  "pagination": {...}, "fallback": bool, "fields": {...} }
//
// Use these helpers in API handlers so status codes, Content-Type headers
// and envelope shape stay consistent.
package jsonutil

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success    bool              `json:"success"`
	Data       any               `json:"data,omitempty"`
	Message    string            `json:"message,omitempty"`
	Error      string            `json:"error,omitempty"`
	Pagination *Pagination       `json:"pagination,omitempty"`
	Fallback   bool              `json:"fallback,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
}

// Pagination describes the page a listing response carries.
type Pagination struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalProjects int64 `json:"totalProjects"`
	HasNext       bool  `json:"hasNext"`
	HasPrev       bool  `json:"hasPrev"`
}

// NewPagination computes the pagination block for a 1-based page.
// TotalPages is ceil(total/limit).
func NewPagination(page, limit int, total int64) *Pagination {
	if limit <= 0 {
		limit = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &Pagination{
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalProjects: total,
		HasNext:       page < totalPages,
		HasPrev:       page > 1,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// OK writes a 200 OK envelope carrying data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// OKMessage writes a 200 OK envelope with data and a message.
func OKMessage(w http.ResponseWriter, data any, message string) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data, Message: message})
}

// Created writes a 201 Created envelope.
func Created(w http.ResponseWriter, data any, message string) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Data: data, Message: message})
}

// Error writes a failure envelope with the given status code.
// detail goes into the "error" field and may be empty.
func Error(w http.ResponseWriter, status int, message, detail string) {
	JSON(w, status, Envelope{Success: false, Message: message, Error: detail})
}

// BadRequest writes a 400 Bad Request envelope.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message, "")
}

// Unauthorized writes a 401 Unauthorized envelope.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message, "")
}

// NotFound writes a 404 Not Found envelope.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message, "")
}

// InternalError writes a 500 Internal Server Error envelope.
// detail should be empty in production; log the real error separately.
func InternalError(w http.ResponseWriter, message, detail string) {
	Error(w, http.StatusInternalServerError, message, detail)
}

// ValidationError writes a 400 Bad Request envelope with field-level errors.
//
// Usage:
//
//	jsonutil.ValidationError(w, "Project could not be created", map[string]string{
//	    "title": "Title is required.",
//	})
func ValidationError(w http.ResponseWriter, message string, fields map[string]string) {
	JSON(w, http.StatusBadRequest, Envelope{
		Success: false,
		Message: message,
		Error:   "validation failed",
		Fields:  fields,
	})
}

// Decode reads and decodes JSON from the request body into v.
func Decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
