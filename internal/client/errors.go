package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches an APIError with status 404 under errors.Is.
var ErrNotFound = errors.New("client: not found")

// APIError is a non-success answer from the API.
type APIError struct {
	Status  int
	Message string
	Detail  string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Is reports whether target is ErrNotFound and the status was 404.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}
