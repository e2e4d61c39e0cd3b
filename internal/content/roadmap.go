package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/phrazzld/vyasa-api/internal/generation"
)

// Roadmap field names, shared by Roadmap.Errors and the JSON response.
const (
	FieldOverview       = "overview"
	FieldLearningStages = "learning_stages"
	FieldResources      = "recommended_resources"
	FieldProjects       = "learning_projects"
)

// Roadmap is a learning plan for a topic. Any field may be empty when its
// generation failed; Errors then holds the cause under the field's name.
// The causes are internal errors and are not meant for clients as they are.
type Roadmap struct {
	Topic          string
	Overview       string
	LearningStages string
	Resources      string
	Projects       string
	Errors         map[string]error
}

// Succeeded returns how many of the four sections were generated.
func (r *Roadmap) Succeeded() int {
	n := 0
	for _, s := range []string{r.Overview, r.LearningStages, r.Resources, r.Projects} {
		if s != "" {
			n++
		}
	}
	return n
}

type roadmapSection struct {
	field    string
	template string
	set      func(r *Roadmap, text string)
}

var roadmapSections = []roadmapSection{
	{FieldOverview, promptRoadmapOverview, func(r *Roadmap, s string) { r.Overview = s }},
	{FieldLearningStages, promptRoadmapStages, func(r *Roadmap, s string) { r.LearningStages = s }},
	{FieldResources, promptRoadmapResources, func(r *Roadmap, s string) { r.Resources = s }},
	{FieldProjects, promptRoadmapProjects, func(r *Roadmap, s string) { r.Projects = s }},
}

// BuildRoadmap generates the four roadmap sections one after another.
//
// A section that fails or comes back empty does not stop the others: its
// error is recorded in Roadmap.Errors and included in the returned
// *multierror.Error, alongside the partially filled roadmap. A
// configuration error is fatal and returned on its own with a nil roadmap.
func (s *Service) BuildRoadmap(ctx context.Context, topic string) (*Roadmap, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrEmptyInput)
	}

	roadmap := &Roadmap{Topic: topic, Errors: map[string]error{}}
	var errs *multierror.Error

	for _, section := range roadmapSections {
		prompt, err := render(section.template, topicData{Topic: topic})
		if err != nil {
			return nil, err
		}

		text, err := s.generateText(ctx, generation.Request{
			PromptText: prompt,
			Model:      s.models.TextModel,
		})
		if generation.IsConfigError(err) {
			return nil, err
		}
		if err != nil {
			s.logger.WarnContext(ctx, "roadmap section failed",
				"topic", topic,
				"section", section.field,
				"error", err)
			roadmap.Errors[section.field] = err
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", section.field, err))
			continue
		}
		section.set(roadmap, text)
	}

	s.logger.InfoContext(ctx, "built roadmap",
		"topic", topic,
		"sections_generated", roadmap.Succeeded(),
		"sections_failed", len(roadmap.Errors))

	return roadmap, errs.ErrorOrNil()
}
