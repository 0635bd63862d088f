package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"physiohub/physio-app/internal/domain"
	"physiohub/physio-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrRoutineNotFound     = errors.New("routine not found")
	ErrRoutineDelivered    = errors.New("delivered routines are frozen and cannot be modified")
	ErrInvalidTransition   = errors.New("invalid routine status transition")
	ErrUnknownExercise     = errors.New("routine references an unknown exercise")
	ErrRoutineAccessDenied = errors.New("routine belongs to another physio")
)

// --- Service Interface ---
type RoutineService interface {
	// Create assigns an ID, validates, and stores a draft routine. Every
	// referenced exercise must resolve in the physio's or shared library.
	Create(ctx context.Context, physioID string, routine *domain.Routine) (*domain.Routine, error)
	Get(ctx context.Context, physioID, routineID string) (*domain.Routine, error)
	List(ctx context.Context, physioID string) ([]domain.Routine, error)
	// Replace swaps the routine wholesale. Delivered routines are frozen.
	Replace(ctx context.Context, physioID string, routine *domain.Routine) (*domain.Routine, error)
	// SetStatus moves the routine through its delivery lifecycle.
	// Transitioning to delivered stamps DeliveredAt and the delivery URL.
	SetStatus(ctx context.Context, physioID, routineID string, status domain.RoutineStatus) (*domain.Routine, error)
	Delete(ctx context.Context, physioID, routineID string) error
}

// --- Service Implementation ---

type routineService struct {
	routineRepo  repository.RoutineRepository
	exerciseRepo repository.ExerciseRepository
	baseURL      string
}

// NewRoutineService creates a new instance of routineService. baseURL is
// the public origin for patient-facing delivery links.
func NewRoutineService(routineRepo repository.RoutineRepository, exerciseRepo repository.ExerciseRepository, baseURL string) RoutineService {
	return &routineService{
		routineRepo:  routineRepo,
		exerciseRepo: exerciseRepo,
		baseURL:      baseURL,
	}
}

func (s *routineService) Create(ctx context.Context, physioID string, routine *domain.Routine) (*domain.Routine, error) {
	routine.ID = uuid.NewString()
	routine.PhysioID = physioID
	if routine.Status == "" {
		routine.Status = domain.RoutineDraft
	}
	if routine.PatientLanguage == "" {
		routine.PatientLanguage = "en"
	}
	if len(routine.WarningSigns) == 0 {
		routine.WarningSigns = domain.DefaultWarningSigns()
	}

	if err := routine.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkExerciseRefs(ctx, physioID, routine); err != nil {
		return nil, err
	}

	if err := s.routineRepo.Create(ctx, routine); err != nil {
		return nil, err
	}
	return routine, nil
}

func (s *routineService) Get(ctx context.Context, physioID, routineID string) (*domain.Routine, error) {
	routine, err := s.routineRepo.GetByID(ctx, routineID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	if routine.PhysioID != physioID {
		return nil, ErrRoutineAccessDenied
	}
	return routine, nil
}

func (s *routineService) List(ctx context.Context, physioID string) ([]domain.Routine, error) {
	return s.routineRepo.ListByPhysio(ctx, physioID)
}

func (s *routineService) Replace(ctx context.Context, physioID string, routine *domain.Routine) (*domain.Routine, error) {
	current, err := s.Get(ctx, physioID, routine.ID)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.RoutineDelivered {
		return nil, ErrRoutineDelivered
	}

	routine.PhysioID = physioID
	// Lifecycle fields only move through SetStatus.
	routine.Status = current.Status
	routine.DeliveredAt = current.DeliveredAt
	routine.DeliveryURL = current.DeliveryURL
	routine.CreatedAt = current.CreatedAt

	if err := routine.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkExerciseRefs(ctx, physioID, routine); err != nil {
		return nil, err
	}

	if err := s.routineRepo.Replace(ctx, routine); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	return routine, nil
}

func (s *routineService) SetStatus(ctx context.Context, physioID, routineID string, status domain.RoutineStatus) (*domain.Routine, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, string(status))
	}

	routine, err := s.Get(ctx, physioID, routineID)
	if err != nil {
		return nil, err
	}
	if !routine.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, routine.Status, status)
	}

	routine.Status = status
	if status == domain.RoutineDelivered {
		now := time.Now().UTC()
		routine.DeliveredAt = &now
		routine.DeliveryURL = fmt.Sprintf("%s/r/%s", s.baseURL, routine.ID)
	}

	if err := s.routineRepo.Replace(ctx, routine); err != nil {
		return nil, err
	}
	return routine, nil
}

func (s *routineService) Delete(ctx context.Context, physioID, routineID string) error {
	routine, err := s.Get(ctx, physioID, routineID)
	if err != nil {
		return err
	}
	// Delivered routines stay on record.
	if routine.Status == domain.RoutineDelivered {
		return ErrRoutineDelivered
	}

	if err := s.routineRepo.Delete(ctx, routineID, physioID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRoutineNotFound
		}
		return err
	}
	return nil
}

// checkExerciseRefs verifies every referenced exercise exists in the
// physio's partition or the shared library.
func (s *routineService) checkExerciseRefs(ctx context.Context, physioID string, routine *domain.Routine) error {
	for _, re := range routine.Exercises {
		_, err := s.exerciseRepo.Get(ctx, physioID, re.ExerciseID)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		_, err = s.exerciseRepo.Get(ctx, domain.SharedOwnerID, re.ExerciseID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrUnknownExercise, re.ExerciseID)
			}
			return err
		}
	}
	return nil
}
