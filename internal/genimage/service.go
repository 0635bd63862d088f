package genimage

import (
	"context"
	"fmt"
	"log/slog"
)

// ImageStore persists a generated image and returns its URL (or path).
// The server backs this with object storage; the CLI with a directory.
type ImageStore interface {
	SaveImage(ctx context.Context, exerciseID string, order int, data []byte) (string, error)
}

// GeneratedImage is one stored illustration.
type GeneratedImage struct {
	ExerciseID string
	Order      int
	URL        string
}

// BatchSummary is the outcome of a bulk generation run: per-exercise
// results and per-exercise failures. A failing exercise never aborts
// the remaining ones.
type BatchSummary struct {
	Generated map[string][]GeneratedImage
	Failed    map[string]error
}

// Total returns the number of images generated across the batch.
func (s *BatchSummary) Total() int {
	n := 0
	for _, images := range s.Generated {
		n += len(images)
	}
	return n
}

// Service orchestrates illustration generation: it builds prompts from
// the catalog, drives the Generator, and stores the results.
type Service struct {
	generator Generator
	store     ImageStore
	cfg       *Config
	logger    *slog.Logger
}

func NewService(generator Generator, store ImageStore, cfg *Config, logger *slog.Logger) *Service {
	return &Service{
		generator: generator,
		store:     store,
		cfg:       cfg,
		logger:    logger,
	}
}

// BuildPrompts returns the full prompt texts for an exercise without
// touching the generator. This is the dry-run path.
func (s *Service) BuildPrompts(exerciseID string) ([]string, error) {
	prompts := PromptsFor(exerciseID)
	if len(prompts) == 0 {
		return nil, fmt.Errorf("no prompts defined for exercise %q", exerciseID)
	}
	texts := make([]string, len(prompts))
	for i, p := range prompts {
		texts[i] = p.Build(s.cfg.StylePrefix, s.cfg.StyleSuffix)
	}
	return texts, nil
}

// GenerateExercise generates and stores every catalog illustration for
// one exercise. The per-image seed is the base seed plus the image
// order, keeping output stable within an exercise.
func (s *Service) GenerateExercise(ctx context.Context, exerciseID string) ([]GeneratedImage, error) {
	prompts := PromptsFor(exerciseID)
	if len(prompts) == 0 {
		return nil, fmt.Errorf("no prompts defined for exercise %q", exerciseID)
	}

	if err := s.generator.Load(ctx, s.cfg); err != nil {
		return nil, err
	}

	results := make([]GeneratedImage, 0, len(prompts))
	for _, p := range prompts {
		text := p.Build(s.cfg.StylePrefix, s.cfg.StyleSuffix)
		seed := s.cfg.BaseSeed + int64(p.ImageOrder)

		s.logger.Info("generating image",
			"exercise", exerciseID, "order", p.ImageOrder, "seed", seed)

		data, err := s.generator.Generate(ctx, text, seed)
		if err != nil {
			return nil, err
		}

		url, err := s.store.SaveImage(ctx, exerciseID, p.ImageOrder, data)
		if err != nil {
			return nil, fmt.Errorf("store image %s/%d: %w", exerciseID, p.ImageOrder, err)
		}

		results = append(results, GeneratedImage{
			ExerciseID: exerciseID,
			Order:      p.ImageOrder,
			URL:        url,
		})
	}
	return results, nil
}

// GenerateAll runs generation for every catalog exercise, collecting
// per-exercise failures instead of aborting on the first one.
func (s *Service) GenerateAll(ctx context.Context) *BatchSummary {
	summary := &BatchSummary{
		Generated: make(map[string][]GeneratedImage),
		Failed:    make(map[string]error),
	}

	for _, exerciseID := range ExerciseIDs() {
		images, err := s.GenerateExercise(ctx, exerciseID)
		if err != nil {
			s.logger.Error("exercise generation failed",
				"exercise", exerciseID, "error", err)
			summary.Failed[exerciseID] = err
			continue
		}
		summary.Generated[exerciseID] = images
	}
	return summary
}

// Unload releases the underlying model.
func (s *Service) Unload(ctx context.Context) error {
	return s.generator.Unload(ctx)
}
