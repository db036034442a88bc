// internal/domain/models/about.go
package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// About is the portfolio owner's profile.
//
// Only one About document is active at a time; the active one is the
// profile the site renders. Older documents are kept (inactive) as history.
type About struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name" validate:"required,max=50" label:"Name"`
	Title        string             `bson:"title" json:"title" validate:"required,max=100" label:"Title"`
	Bio          string             `bson:"bio" json:"bio" validate:"required,max=1000" label:"Biography"`
	Skills       []Skill            `bson:"skills" json:"skills"`
	ProfileImage *ProfileImage      `bson:"profile_image,omitempty" json:"profileImage,omitempty"`
	Contact      Contact            `bson:"contact" json:"contact"`
	SocialLinks  []SocialLink       `bson:"social_links" json:"socialLinks"`
	Experience   []Experience       `bson:"experience" json:"experience"`
	Education    []Education        `bson:"education" json:"education"`
	IsActive     bool               `bson:"is_active" json:"isActive"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Skill is a single entry in the skills list. Level is a percentage (1-100).
type Skill struct {
	Name     string `bson:"name" json:"name" validate:"required" label:"Skill name"`
	Level    int    `bson:"level" json:"level" validate:"min=1,max=100" label:"Skill level"`
	Category string `bson:"category" json:"category" validate:"skillcategory" label:"Skill category"`
}

// UnmarshalJSON applies DefaultSkillLevel only when "level" is absent, so an
// explicit 0 still fails validation.
func (s *Skill) UnmarshalJSON(b []byte) error {
	type plain Skill
	aux := struct {
		*plain
		Level *int `json:"level"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	s.Level = DefaultSkillLevel
	if aux.Level != nil {
		s.Level = *aux.Level
	}
	return nil
}

// ProfileImage points at the owner's portrait.
type ProfileImage struct {
	URL string `bson:"url" json:"url"`
	Alt string `bson:"alt" json:"alt"`
}

// Contact holds the public contact details. All fields are optional.
type Contact struct {
	Email    string `bson:"email,omitempty" json:"email,omitempty" validate:"contactemail" label:"Email"`
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`
	Location string `bson:"location,omitempty" json:"location,omitempty"`
	Website  string `bson:"website,omitempty" json:"website,omitempty"`
}

// SocialLink is a profile on an external platform.
type SocialLink struct {
	Platform string `bson:"platform" json:"platform" validate:"required,socialplatform" label:"Platform"`
	URL      string `bson:"url" json:"url" validate:"required,httpurl" label:"URL"`
	Username string `bson:"username,omitempty" json:"username,omitempty"`
}

// Experience is a job entry. EndDate is nil while Current is true.
type Experience struct {
	Company     string     `bson:"company" json:"company" validate:"required" label:"Company"`
	Position    string     `bson:"position" json:"position" validate:"required" label:"Position"`
	StartDate   time.Time  `bson:"start_date" json:"startDate" validate:"requiredtime" label:"Start date"`
	EndDate     *time.Time `bson:"end_date,omitempty" json:"endDate,omitempty"`
	Current     bool       `bson:"current" json:"current"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
}

// Education is a school entry.
type Education struct {
	School    string     `bson:"school" json:"school" validate:"required" label:"School"`
	Degree    string     `bson:"degree" json:"degree" validate:"required" label:"Degree"`
	Field     string     `bson:"field,omitempty" json:"field,omitempty"`
	StartDate time.Time  `bson:"start_date" json:"startDate" validate:"requiredtime" label:"Start date"`
	EndDate   *time.Time `bson:"end_date,omitempty" json:"endDate,omitempty"`
	Current   bool       `bson:"current" json:"current"`
}

// Skill categories
const (
	SkillCategoryFrontend = "frontend"
	SkillCategoryBackend  = "backend"
	SkillCategoryDatabase = "database"
	SkillCategoryDevOps   = "devops"
	SkillCategoryOther    = "other"
)

// DefaultSkillLevel is applied when a decoded skill has no "level" key.
const DefaultSkillLevel = 50

// AllSkillCategories returns all valid skill categories.
func AllSkillCategories() []string {
	return []string{
		SkillCategoryFrontend,
		SkillCategoryBackend,
		SkillCategoryDatabase,
		SkillCategoryDevOps,
		SkillCategoryOther,
	}
}

// IsValidSkillCategory checks if a category is valid.
func IsValidSkillCategory(c string) bool {
	for _, v := range AllSkillCategories() {
		if v == c {
			return true
		}
	}
	return false
}

// AllSocialPlatforms returns the platforms a social link may name.
func AllSocialPlatforms() []string {
	return []string{"github", "linkedin", "twitter", "instagram", "youtube", "other"}
}

// IsValidSocialPlatform checks if a platform is valid.
func IsValidSocialPlatform(p string) bool {
	for _, v := range AllSocialPlatforms() {
		if v == p {
			return true
		}
	}
	return false
}

// ApplyDefaults fills zero-valued optional fields with their defaults.
// Skill levels are defaulted while decoding, not here.
func (a *About) ApplyDefaults() {
	for i := range a.Skills {
		if a.Skills[i].Category == "" {
			a.Skills[i].Category = SkillCategoryOther
		}
	}
	if a.Skills == nil {
		a.Skills = []Skill{}
	}
	if a.SocialLinks == nil {
		a.SocialLinks = []SocialLink{}
	}
	if a.Experience == nil {
		a.Experience = []Experience{}
	}
	if a.Education == nil {
		a.Education = []Education{}
	}
}

// SkillGroups groups skills by category.
//
// The map is keyed by exactly the categories present in skills; each skill
// lands in one group and keeps its relative order.
func SkillGroups(skills []Skill) map[string][]Skill {
	groups := make(map[string][]Skill)
	for _, s := range skills {
		groups[s.Category] = append(groups[s.Category], s)
	}
	return groups
}
