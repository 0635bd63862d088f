package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"physiohub/physio-app/internal/domain"
)

// RepositoryError defines errors specific to the repository layer.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

const (
	ErrNotFound  = RepositoryError("requested item not found")
	ErrDuplicate = RepositoryError("item already exists")
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ExerciseRepository defines persistence operations for exercises.
// Exercises are keyed by (owner_id, id); an owner is either a physio's
// user ID or the shared scope.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) error
	Get(ctx context.Context, ownerID, exerciseID string) (*domain.Exercise, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Exercise, error)
	// Replace swaps the stored document for the given one wholesale.
	Replace(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, ownerID, exerciseID string) error
}

// RoutineRepository defines persistence operations for routines.
type RoutineRepository interface {
	Create(ctx context.Context, routine *domain.Routine) error
	GetByID(ctx context.Context, id string) (*domain.Routine, error)
	ListByPhysio(ctx context.Context, physioID string) ([]domain.Routine, error)
	Replace(ctx context.Context, routine *domain.Routine) error
	Delete(ctx context.Context, id, physioID string) error
}
