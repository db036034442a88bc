package client

import (
	"context"
	"errors"

	"github.com/dalemusser/stratafolio/internal/app/system/jsonutil"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Status is where a page is in its load.
type Status int

const (
	// Loading is the zero value: a view shows its placeholder.
	Loading Status = iota
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Inline error messages shown by the detail views.
const (
	MsgProjectNotFound = "Project not found"
	MsgProjectFailed   = "An error occurred while loading the project"
	MsgAboutNotFound   = "Profile not found"
	MsgAboutFailed     = "An error occurred while loading the profile"
)

// HomePage holds the featured projects.
type HomePage struct {
	Status   Status
	Featured []models.Project
	// Fallback is set when Featured is sample data.
	Fallback bool
	Notice   string
}

// AboutPage holds the profile and its skills grouped by category.
type AboutPage struct {
	Status   Status
	About    *models.About
	Skills   Skills
	Contact  ContactInfo
	ErrorMsg string
}

// ProjectsPage is the paginated listing.
type ProjectsPage struct {
	Status     Status
	Projects   []models.Project
	Pagination *jsonutil.Pagination
	Fallback   bool
	Notice     string
}

// ProjectDetailPage is a single project or an inline error.
type ProjectDetailPage struct {
	Status   Status
	Project  *models.Project
	Fallback bool
	Notice   string
	ErrorMsg string
}

// LoadHomePage fetches the featured projects. A failed fetch leaves the
// listing empty; the page still loads.
func (c *Client) LoadHomePage(ctx context.Context) HomePage {
	page := HomePage{Status: Loaded, Featured: []models.Project{}}
	res, err := c.FeaturedProjects(ctx)
	if err != nil {
		c.logger.Warn("load featured projects", zap.Error(err))
		return page
	}
	if res.Data != nil {
		page.Featured = res.Data
	}
	page.Fallback = res.Fallback
	page.Notice = res.Message
	return page
}

// LoadAboutPage fetches the profile, then its skills and contact details.
// A missing profile fails the page; skills and contact failures leave those
// sections empty.
func (c *Client) LoadAboutPage(ctx context.Context) AboutPage {
	res, err := c.GetAbout(ctx)
	if err != nil {
		c.logger.Warn("load profile", zap.Error(err))
		msg := MsgAboutFailed
		if errors.Is(err, ErrNotFound) {
			msg = MsgAboutNotFound
		}
		return AboutPage{Status: Failed, ErrorMsg: msg}
	}

	page := AboutPage{Status: Loaded, About: &res.Data}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		skills, err := c.GetSkills(gctx)
		if err != nil {
			c.logger.Warn("load skills", zap.Error(err))
			return nil
		}
		page.Skills = skills.Data
		return nil
	})
	g.Go(func() error {
		contact, err := c.GetContact(gctx)
		if err != nil {
			c.logger.Warn("load contact", zap.Error(err))
			return nil
		}
		page.Contact = contact.Data
		return nil
	})
	_ = g.Wait()

	return page
}

// LoadProjectsPage fetches one page of the listing. A failed fetch keeps an
// empty list and is only logged.
func (c *Client) LoadProjectsPage(ctx context.Context, opts ListOptions) ProjectsPage {
	page := ProjectsPage{Status: Loaded, Projects: []models.Project{}}

	res, err := c.ListProjects(ctx, opts)
	if err != nil {
		c.logger.Warn("load projects", zap.Error(err))
		return page
	}
	if res.Data != nil {
		page.Projects = res.Data
	}
	page.Pagination = res.Pagination
	page.Fallback = res.Fallback
	page.Notice = res.Message
	return page
}

// LoadProjectDetailPage fetches one project. Unlike the listings, a failure
// is surfaced as an inline error.
func (c *Client) LoadProjectDetailPage(ctx context.Context, id string) ProjectDetailPage {
	res, err := c.GetProject(ctx, id)
	if err != nil {
		c.logger.Warn("load project", zap.String("id", id), zap.Error(err))
		msg := MsgProjectFailed
		if errors.Is(err, ErrNotFound) {
			msg = MsgProjectNotFound
		}
		return ProjectDetailPage{Status: Failed, ErrorMsg: msg}
	}
	return ProjectDetailPage{
		Status:   Loaded,
		Project:  &res.Data,
		Fallback: res.Fallback,
		Notice:   res.Message,
	}
}
