// Package normalize provides helper functions for consistent string normalization
// across the application. Use these helpers instead of scattered strings.ToLower
// and strings.TrimSpace calls to ensure consistent behavior.
package normalize

import (
	"strings"

	"github.com/dalemusser/stratafolio/internal/domain/models"
)

// Email normalizes an email address by trimming whitespace and converting to lowercase.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Text trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(s)
}

// Enum normalizes an enumerated value (status, category, platform).
func Enum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam normalizes a query parameter by trimming whitespace.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// List trims every entry and drops the blank ones.
func List(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// About trims the text fields of an About document in place.
func About(a *models.About) {
	a.Name = Text(a.Name)
	a.Title = Text(a.Title)
	a.Bio = Text(a.Bio)
	for i := range a.Skills {
		a.Skills[i].Name = Text(a.Skills[i].Name)
		a.Skills[i].Category = Enum(a.Skills[i].Category)
	}
	a.Contact.Email = Email(a.Contact.Email)
	a.Contact.Phone = Text(a.Contact.Phone)
	a.Contact.Location = Text(a.Contact.Location)
	a.Contact.Website = Text(a.Contact.Website)
	for i := range a.SocialLinks {
		a.SocialLinks[i].Platform = Enum(a.SocialLinks[i].Platform)
		a.SocialLinks[i].URL = Text(a.SocialLinks[i].URL)
	}
	for i := range a.Experience {
		e := &a.Experience[i]
		e.Company = Text(e.Company)
		e.Position = Text(e.Position)
		e.Description = Text(e.Description)
	}
	for i := range a.Education {
		e := &a.Education[i]
		e.School = Text(e.School)
		e.Degree = Text(e.Degree)
		e.Field = Text(e.Field)
	}
}

// Project trims the text fields of a Project in place.
func Project(p *models.Project) {
	p.Title = Text(p.Title)
	p.Description = Text(p.Description)
	p.LongDescription = Text(p.LongDescription)
	p.DemoURL = Text(p.DemoURL)
	p.GithubURL = Text(p.GithubURL)
	p.Status = Enum(p.Status)
	if p.Technologies != nil {
		p.Technologies = List(p.Technologies)
	}
	if p.Tags != nil {
		p.Tags = List(p.Tags)
	}
}
