package service

import (
	"context"
	"errors"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"physiohub/physio-app/internal/domain"
	"physiohub/physio-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrExerciseExists   = errors.New("exercise with this id already exists in your library")
	ErrSharedReadOnly   = errors.New("shared library exercises cannot be modified")
)

const localizedCacheSize = 512

// SearchFilter narrows exercise listing. Empty fields match everything.
type SearchFilter struct {
	BodyRegion      string
	Condition       string
	Difficulty      string
	TherapeuticGoal string
	Equipment       string
}

// --- Service Interface ---
type ExerciseService interface {
	// Create adds an exercise to the physio's library partition.
	Create(ctx context.Context, physioID string, exercise *domain.Exercise) (*domain.Exercise, error)
	// Get resolves an exercise from the physio's partition first, then
	// the shared library.
	Get(ctx context.Context, physioID, exerciseID string) (*domain.Exercise, error)
	// GetLocalized renders an exercise in the requested language with
	// field-level fallback to the primary language.
	GetLocalized(ctx context.Context, physioID, exerciseID, language string) (*domain.LocalizedExercise, error)
	List(ctx context.Context, physioID string) ([]domain.Exercise, error)
	ListShared(ctx context.Context) ([]domain.Exercise, error)
	Search(ctx context.Context, physioID string, filter SearchFilter) ([]domain.Exercise, error)
	// Replace swaps the stored exercise wholesale after validation.
	Replace(ctx context.Context, physioID string, exercise *domain.Exercise) (*domain.Exercise, error)
	Delete(ctx context.Context, physioID, exerciseID string) error
}

// --- Service Implementation ---

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository

	// Localized views are immutable snapshots keyed by
	// owner/exercise/language, evicted on any write to the exercise.
	localized *lru.Cache[string, domain.LocalizedExercise]
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	cache, err := lru.New[string, domain.LocalizedExercise](localizedCacheSize)
	if err != nil {
		panic(err) // only fails on a non-positive size
	}
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		localized:    cache,
	}
}

func (s *exerciseService) Create(ctx context.Context, physioID string, exercise *domain.Exercise) (*domain.Exercise, error) {
	exercise.OwnerID = physioID
	if err := exercise.Validate(); err != nil {
		return nil, err
	}

	if err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrExerciseExists
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) Get(ctx context.Context, physioID, exerciseID string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.Get(ctx, physioID, exerciseID)
	if err == nil {
		return exercise, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// Fall back to the shared library.
	exercise, err = s.exerciseRepo.Get(ctx, domain.SharedOwnerID, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) GetLocalized(ctx context.Context, physioID, exerciseID, language string) (*domain.LocalizedExercise, error) {
	key := physioID + "/" + exerciseID + "/" + language
	if view, ok := s.localized.Get(key); ok {
		return &view, nil
	}

	exercise, err := s.Get(ctx, physioID, exerciseID)
	if err != nil {
		return nil, err
	}

	view := domain.Localize(exercise, language)
	s.localized.Add(key, view)
	return &view, nil
}

func (s *exerciseService) List(ctx context.Context, physioID string) ([]domain.Exercise, error) {
	return s.exerciseRepo.ListByOwner(ctx, physioID)
}

func (s *exerciseService) ListShared(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.ListByOwner(ctx, domain.SharedOwnerID)
}

// Search lists the physio's own and the shared exercises, filtered.
func (s *exerciseService) Search(ctx context.Context, physioID string, filter SearchFilter) ([]domain.Exercise, error) {
	own, err := s.exerciseRepo.ListByOwner(ctx, physioID)
	if err != nil {
		return nil, err
	}
	shared, err := s.exerciseRepo.ListByOwner(ctx, domain.SharedOwnerID)
	if err != nil {
		return nil, err
	}

	var results []domain.Exercise
	for _, exercise := range append(own, shared...) {
		if matchesFilter(&exercise, filter) {
			results = append(results, exercise)
		}
	}
	return results, nil
}

func (s *exerciseService) Replace(ctx context.Context, physioID string, exercise *domain.Exercise) (*domain.Exercise, error) {
	if exercise.OwnerID == domain.SharedOwnerID {
		return nil, ErrSharedReadOnly
	}
	exercise.OwnerID = physioID
	if err := exercise.Validate(); err != nil {
		return nil, err
	}

	if err := s.exerciseRepo.Replace(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	s.evictLocalized(physioID, exercise.ID)
	return exercise, nil
}

func (s *exerciseService) Delete(ctx context.Context, physioID, exerciseID string) error {
	err := s.exerciseRepo.Delete(ctx, physioID, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	s.evictLocalized(physioID, exerciseID)
	return nil
}

func (s *exerciseService) evictLocalized(physioID, exerciseID string) {
	prefix := physioID + "/" + exerciseID + "/"
	for _, key := range s.localized.Keys() {
		if strings.HasPrefix(key, prefix) {
			s.localized.Remove(key)
		}
	}
}

func matchesFilter(e *domain.Exercise, f SearchFilter) bool {
	if f.BodyRegion != "" {
		found := false
		for _, r := range e.BodyRegions {
			if strings.EqualFold(string(r), f.BodyRegion) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Difficulty != "" && !strings.EqualFold(string(e.Difficulty), f.Difficulty) {
		return false
	}
	if f.Condition != "" && !anyContains(e.Conditions, f.Condition) {
		return false
	}
	if f.TherapeuticGoal != "" && !anyContains(e.TherapeuticGoals, f.TherapeuticGoal) {
		return false
	}
	if f.Equipment != "" && !anyEquals(e.Equipment, f.Equipment) {
		return false
	}
	return true
}

func anyContains(items []string, want string) bool {
	want = strings.ToLower(want)
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), want) {
			return true
		}
	}
	return false
}

func anyEquals(items []string, want string) bool {
	for _, item := range items {
		if strings.EqualFold(item, want) {
			return true
		}
	}
	return false
}
