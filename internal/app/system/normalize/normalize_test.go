package normalize

import (
	"reflect"
	"testing"

	"github.com/dalemusser/stratafolio/internal/domain/models"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user@example.com", "user@example.com"},
		{"User@Example.COM", "user@example.com"},
		{"  user@example.com  ", "user@example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Email(tt.input); got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnum(t *testing.T) {
	if got := Enum("  Completed "); got != "completed" {
		t.Errorf("Enum() = %q, want %q", got, "completed")
	}
}

func TestList(t *testing.T) {
	got := List([]string{" Go ", "", "  ", "MongoDB"})
	want := []string{"Go", "MongoDB"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestProject(t *testing.T) {
	p := models.Project{
		Title:        "  Site ",
		Description:  " desc ",
		Status:       " Completed",
		Technologies: []string{" Go", ""},
	}
	Project(&p)

	if p.Title != "Site" || p.Description != "desc" {
		t.Errorf("text not trimmed: %+v", p)
	}
	if p.Status != "completed" {
		t.Errorf("Status = %q, want %q", p.Status, "completed")
	}
	if !reflect.DeepEqual(p.Technologies, []string{"Go"}) {
		t.Errorf("Technologies = %v", p.Technologies)
	}
	if p.Tags != nil {
		t.Errorf("Tags = %v, want nil", p.Tags)
	}
}

func TestAbout(t *testing.T) {
	a := models.About{
		Name:        " Ada ",
		Contact:     models.Contact{Email: " Ada@Example.com "},
		Skills:      []models.Skill{{Name: " Go ", Category: "Backend"}},
		SocialLinks: []models.SocialLink{{Platform: "GitHub", URL: " https://github.com/ada "}},
	}
	About(&a)

	if a.Name != "Ada" {
		t.Errorf("Name = %q", a.Name)
	}
	if a.Contact.Email != "ada@example.com" {
		t.Errorf("Email = %q", a.Contact.Email)
	}
	if a.Skills[0].Name != "Go" || a.Skills[0].Category != "backend" {
		t.Errorf("Skill = %+v", a.Skills[0])
	}
	if a.SocialLinks[0].Platform != "github" || a.SocialLinks[0].URL != "https://github.com/ada" {
		t.Errorf("SocialLink = %+v", a.SocialLinks[0])
	}
}
