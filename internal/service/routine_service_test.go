package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"physiohub/physio-app/internal/domain"
	"physiohub/physio-app/internal/repository"
)

// fakeRoutineRepo is an in-memory repository.RoutineRepository.
type fakeRoutineRepo struct {
	items map[string]*domain.Routine
}

func newFakeRoutineRepo() *fakeRoutineRepo {
	return &fakeRoutineRepo{items: map[string]*domain.Routine{}}
}

func (r *fakeRoutineRepo) Create(_ context.Context, routine *domain.Routine) error {
	if _, exists := r.items[routine.ID]; exists {
		return repository.ErrDuplicate
	}
	cp := *routine
	r.items[routine.ID] = &cp
	return nil
}

func (r *fakeRoutineRepo) GetByID(_ context.Context, id string) (*domain.Routine, error) {
	routine, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *routine
	return &cp, nil
}

func (r *fakeRoutineRepo) ListByPhysio(_ context.Context, physioID string) ([]domain.Routine, error) {
	var out []domain.Routine
	for _, routine := range r.items {
		if routine.PhysioID == physioID {
			out = append(out, *routine)
		}
	}
	return out, nil
}

func (r *fakeRoutineRepo) Replace(_ context.Context, routine *domain.Routine) error {
	current, ok := r.items[routine.ID]
	if !ok || current.PhysioID != routine.PhysioID {
		return repository.ErrNotFound
	}
	cp := *routine
	r.items[routine.ID] = &cp
	return nil
}

func (r *fakeRoutineRepo) Delete(_ context.Context, id, physioID string) error {
	current, ok := r.items[id]
	if !ok || current.PhysioID != physioID {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func routineFixture() *domain.Routine {
	r := domain.NewRoutine("", "", "Maria Rossi")
	r.Title = "Neck recovery program"
	r.Diagnosis = "Cervicogenic headache"
	r.TherapeuticGoals = []string{"reduce headache frequency"}
	r.Exercises = []domain.RoutineExercise{
		{ExerciseID: "chin_tuck", Order: 1},
	}
	return r
}

func newRoutineFixtureService(t *testing.T) (RoutineService, *fakeRoutineRepo) {
	t.Helper()
	exercises := newFakeExerciseRepo()
	seedExercise(t, exercises, domain.SharedOwnerID, "chin_tuck")
	routines := newFakeRoutineRepo()
	return NewRoutineService(routines, exercises, "https://app.example.com"), routines
}

func TestRoutineServiceCreateAssignsIDAndDraft(t *testing.T) {
	svc, _ := newRoutineFixtureService(t)

	created, err := svc.Create(context.Background(), "physio-1", routineFixture())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "physio-1", created.PhysioID)
	assert.Equal(t, domain.RoutineDraft, created.Status)
	assert.Equal(t, domain.DefaultWarningSigns(), created.WarningSigns)
}

func TestRoutineServiceCreateUnknownExercise(t *testing.T) {
	svc, _ := newRoutineFixtureService(t)

	r := routineFixture()
	r.Exercises = append(r.Exercises, domain.RoutineExercise{ExerciseID: "moonwalk", Order: 2})

	_, err := svc.Create(context.Background(), "physio-1", r)
	require.ErrorIs(t, err, ErrUnknownExercise)
	assert.Contains(t, err.Error(), "moonwalk")
}

func TestRoutineServiceGetScopedToPhysio(t *testing.T) {
	svc, _ := newRoutineFixtureService(t)
	created, err := svc.Create(context.Background(), "physio-1", routineFixture())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "physio-2", created.ID)
	assert.ErrorIs(t, err, ErrRoutineAccessDenied)
}

func TestRoutineServiceStatusLifecycle(t *testing.T) {
	svc, _ := newRoutineFixtureService(t)
	created, err := svc.Create(context.Background(), "physio-1", routineFixture())
	require.NoError(t, err)

	// draft -> delivered is not allowed.
	_, err = svc.SetStatus(context.Background(), "physio-1", created.ID, domain.RoutineDelivered)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	ready, err := svc.SetStatus(context.Background(), "physio-1", created.ID, domain.RoutineReady)
	require.NoError(t, err)
	assert.Equal(t, domain.RoutineReady, ready.Status)

	delivered, err := svc.SetStatus(context.Background(), "physio-1", created.ID, domain.RoutineDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.RoutineDelivered, delivered.Status)
	require.NotNil(t, delivered.DeliveredAt)
	assert.Equal(t, "https://app.example.com/r/"+created.ID, delivered.DeliveryURL)

	// Delivered is terminal.
	_, err = svc.SetStatus(context.Background(), "physio-1", created.ID, domain.RoutineDraft)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRoutineServiceDeliveredIsFrozen(t *testing.T) {
	svc, _ := newRoutineFixtureService(t)
	created, err := svc.Create(context.Background(), "physio-1", routineFixture())
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), "physio-1", created.ID, domain.RoutineReady)
	require.NoError(t, err)
	_, err = svc.SetStatus(context.Background(), "physio-1", created.ID, domain.RoutineDelivered)
	require.NoError(t, err)

	created.GeneralNotes = "tweak after delivery"
	_, err = svc.Replace(context.Background(), "physio-1", created)
	assert.ErrorIs(t, err, ErrRoutineDelivered)

	err = svc.Delete(context.Background(), "physio-1", created.ID)
	assert.ErrorIs(t, err, ErrRoutineDelivered)
}

func TestRoutineServiceReplaceKeepsLifecycleFields(t *testing.T) {
	svc, _ := newRoutineFixtureService(t)
	created, err := svc.Create(context.Background(), "physio-1", routineFixture())
	require.NoError(t, err)

	update := routineFixture()
	update.ID = created.ID
	update.Status = domain.RoutineDelivered // must be ignored
	update.GeneralNotes = "progress to 3 sets"

	replaced, err := svc.Replace(context.Background(), "physio-1", update)
	require.NoError(t, err)
	assert.Equal(t, domain.RoutineDraft, replaced.Status)
	assert.Equal(t, "progress to 3 sets", replaced.GeneralNotes)
}

func TestRoutineServiceDelete(t *testing.T) {
	svc, repo := newRoutineFixtureService(t)
	created, err := svc.Create(context.Background(), "physio-1", routineFixture())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "physio-1", created.ID))
	assert.Empty(t, repo.items)
}
