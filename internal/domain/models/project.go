// internal/domain/models/project.go
package models

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is a portfolio entry.
type Project struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title           string             `bson:"title" json:"title" validate:"required,max=100" label:"Title"`
	Description     string             `bson:"description" json:"description" validate:"required,max=500" label:"Description"`
	LongDescription string             `bson:"long_description,omitempty" json:"longDescription,omitempty" validate:"max=2000" label:"Long description"`
	Technologies    []string           `bson:"technologies" json:"technologies"`
	Images          []ProjectImage     `bson:"images" json:"images"`
	DemoURL         string             `bson:"demo_url,omitempty" json:"demoUrl,omitempty" validate:"opthttpurl" label:"Demo URL"`
	GithubURL       string             `bson:"github_url,omitempty" json:"githubUrl,omitempty" validate:"opthttpurl" label:"GitHub URL"`
	Status          string             `bson:"status" json:"status" validate:"projectstatus" label:"Status"`
	Featured        bool               `bson:"featured" json:"featured"`
	Order           int                `bson:"order" json:"order"`
	Tags            []string           `bson:"tags" json:"tags"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ProjectImage is a screenshot or cover image. At most one should be main.
type ProjectImage struct {
	URL    string `bson:"url" json:"url"`
	Alt    string `bson:"alt,omitempty" json:"alt,omitempty"`
	IsMain bool   `bson:"is_main" json:"isMain"`
}

// Project statuses
const (
	ProjectStatusDevelopment = "development"
	ProjectStatusCompleted   = "completed"
	ProjectStatusArchived    = "archived"
)

// FeaturedLimit caps the featured shortcut listing.
const FeaturedLimit = 6

// AllProjectStatuses returns all valid project statuses.
func AllProjectStatuses() []string {
	return []string{
		ProjectStatusDevelopment,
		ProjectStatusCompleted,
		ProjectStatusArchived,
	}
}

// IsValidProjectStatus checks if a status is valid.
func IsValidProjectStatus(s string) bool {
	for _, v := range AllProjectStatuses() {
		if v == s {
			return true
		}
	}
	return false
}

// ApplyDefaults fills zero-valued optional fields with their defaults.
func (p *Project) ApplyDefaults() {
	if p.Status == "" {
		p.Status = ProjectStatusDevelopment
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Images == nil {
		p.Images = []ProjectImage{}
	}
}

// ListingLess reports whether a sorts before b in the project listing:
// featured first, then Order ascending, then newest first.
func ListingLess(a, b Project) bool {
	if a.Featured != b.Featured {
		return a.Featured
	}
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// FeaturedLess is the featured shortcut order: Order ascending, then newest first.
func FeaturedLess(a, b Project) bool {
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// SortForListing sorts projects in place using ListingLess.
func SortForListing(ps []Project) {
	sort.SliceStable(ps, func(i, j int) bool { return ListingLess(ps[i], ps[j]) })
}

// SortFeatured sorts projects in place using FeaturedLess.
func SortFeatured(ps []Project) {
	sort.SliceStable(ps, func(i, j int) bool { return FeaturedLess(ps[i], ps[j]) })
}
