package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	errorsfeature "github.com/dalemusser/stratafolio/internal/app/features/errors"
	projectsfeature "github.com/dalemusser/stratafolio/internal/app/features/projects"
	"github.com/dalemusser/stratafolio/internal/app/system/storehealth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// unreachable returns a client whose server is already closed.
func unreachable(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	c := New(srv.URL, WithHTTPClient(srv.Client()))
	srv.Close()
	return c
}

func TestLoadHomePage(t *testing.T) {
	_, c := apiServer(t, 0)

	page := c.LoadHomePage(context.Background())
	if page.Status != Loaded {
		t.Fatalf("Status = %s, want loaded", page.Status)
	}
	if len(page.Featured) != 2 || !page.Fallback || page.Notice == "" {
		t.Errorf("Featured = %d, Fallback = %v, Notice = %q", len(page.Featured), page.Fallback, page.Notice)
	}
}

func TestLoadHomePage_OneRequest(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	errLog := errorsfeature.NewErrorLogger(zap.NewNop(), true)
	h := projectsfeature.NewHandler(nil, storehealth.Static{Err: storehealth.ErrUnavailable}, nil, errLog, 0, zap.NewNop())

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			mu.Lock()
			paths = append(paths, req.URL.Path)
			mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})
	r.Mount("/api/projects", projectsfeature.Routes(h))
	srv := httptest.NewServer(r)
	defer srv.Close()

	page := New(srv.URL, WithHTTPClient(srv.Client())).LoadHomePage(context.Background())
	if len(page.Featured) != 2 {
		t.Errorf("Featured = %d, want 2", len(page.Featured))
	}
	mu.Lock()
	defer mu.Unlock()
	if len(paths) != 1 || paths[0] != "/api/projects/featured" {
		t.Errorf("requests = %v, want [/api/projects/featured]", paths)
	}
}

func TestLoadHomePage_SwallowsErrors(t *testing.T) {
	page := unreachable(t).LoadHomePage(context.Background())
	if page.Status != Loaded || page.Featured == nil || len(page.Featured) != 0 {
		t.Errorf("page = %+v, want loaded with empty listing", page)
	}
}

func TestLoadAboutPage(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantStatus Status
		wantMsg    string
	}{
		{"loaded", 0, Loaded, ""},
		{"not found", http.StatusNotFound, Failed, MsgAboutNotFound},
		{"server error", http.StatusInternalServerError, Failed, MsgAboutFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := apiServer(t, tt.status)

			page := c.LoadAboutPage(context.Background())
			if page.Status != tt.wantStatus || page.ErrorMsg != tt.wantMsg {
				t.Errorf("Status = %s, ErrorMsg = %q", page.Status, page.ErrorMsg)
			}
			if tt.wantStatus == Loaded {
				if len(page.Skills.All) != 4 || page.Contact.Contact.Email != "ada@example.com" {
					t.Errorf("Skills = %+v, Contact = %+v", page.Skills, page.Contact)
				}
			}
		})
	}
}

func TestLoadProjectsPage(t *testing.T) {
	_, c := apiServer(t, 0)

	page := c.LoadProjectsPage(context.Background(), ListOptions{})
	if page.Status != Loaded || len(page.Projects) != 5 || !page.Fallback {
		t.Errorf("Status = %s, Projects = %d, Fallback = %v", page.Status, len(page.Projects), page.Fallback)
	}
	if page.Pagination == nil || page.Pagination.TotalPages != 1 {
		t.Errorf("Pagination = %+v", page.Pagination)
	}
}

func TestLoadProjectsPage_SwallowsErrors(t *testing.T) {
	page := unreachable(t).LoadProjectsPage(context.Background(), ListOptions{})
	if page.Status != Loaded {
		t.Errorf("Status = %s, want loaded", page.Status)
	}
	if page.Projects == nil || len(page.Projects) != 0 {
		t.Errorf("Projects = %v, want empty non-nil", page.Projects)
	}
}

func TestLoadProjectDetailPage(t *testing.T) {
	_, c := apiServer(t, 0)
	ctx := context.Background()

	tests := []struct {
		name       string
		client     *Client
		id         string
		wantStatus Status
		wantMsg    string
	}{
		{"found", c, "000000000000000000000001", Loaded, ""},
		{"missing", c, "000000000000000000000042", Failed, MsgProjectNotFound},
		{"malformed id", c, "nope", Failed, MsgProjectNotFound},
		{"unreachable", unreachable(t), "000000000000000000000001", Failed, MsgProjectFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := tt.client.LoadProjectDetailPage(ctx, tt.id)
			if page.Status != tt.wantStatus || page.ErrorMsg != tt.wantMsg {
				t.Errorf("Status = %s, ErrorMsg = %q", page.Status, page.ErrorMsg)
			}
			if tt.wantStatus == Loaded && (page.Project == nil || !page.Fallback) {
				t.Errorf("Project = %v, Fallback = %v", page.Project, page.Fallback)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	for s, want := range map[Status]string{Loading: "loading", Loaded: "loaded", Failed: "failed", Status(9): "unknown"} {
		if got := s.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", s, got, want)
		}
	}
}
