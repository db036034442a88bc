// internal/app/resources/resources.go
package resources

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dalemusser/stratafolio/internal/domain/models"
)

// Embedded sample data: the fallback list served while the store is down,
// and the optional seed for an empty projects collection.
//
//go:embed samples/projects.json
var samplesFS embed.FS

var (
	sampleOnce     sync.Once
	sampleProjects []models.Project
	sampleErr      error
)

// SampleProjects returns a fresh copy of the embedded sample projects.
// Callers may modify the result.
func SampleProjects() ([]models.Project, error) {
	sampleOnce.Do(func() {
		raw, err := samplesFS.ReadFile("samples/projects.json")
		if err != nil {
			sampleErr = fmt.Errorf("read sample projects: %w", err)
			return
		}
		if err := json.Unmarshal(raw, &sampleProjects); err != nil {
			sampleErr = fmt.Errorf("decode sample projects: %w", err)
			return
		}
		for i := range sampleProjects {
			sampleProjects[i].ApplyDefaults()
		}
	})
	if sampleErr != nil {
		return nil, sampleErr
	}

	out := make([]models.Project, len(sampleProjects))
	for i, p := range sampleProjects {
		p.Technologies = append([]string(nil), p.Technologies...)
		p.Tags = append([]string(nil), p.Tags...)
		p.Images = append([]models.ProjectImage(nil), p.Images...)
		p.ApplyDefaults()
		out[i] = p
	}
	return out, nil
}

// MustSampleProjects is SampleProjects for callers that treat a broken
// embed as a programming error.
func MustSampleProjects() []models.Project {
	ps, err := SampleProjects()
	if err != nil {
		panic(err)
	}
	return ps
}
