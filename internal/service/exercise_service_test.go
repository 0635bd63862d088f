package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"physiohub/physio-app/internal/domain"
	"physiohub/physio-app/internal/repository"
)

// fakeExerciseRepo is an in-memory repository.ExerciseRepository keyed
// by owner_id/id.
type fakeExerciseRepo struct {
	items map[string]*domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{items: map[string]*domain.Exercise{}}
}

func key(ownerID, exerciseID string) string {
	return ownerID + "/" + exerciseID
}

func (r *fakeExerciseRepo) Create(_ context.Context, e *domain.Exercise) error {
	k := key(e.OwnerID, e.ID)
	if _, exists := r.items[k]; exists {
		return repository.ErrDuplicate
	}
	cp := *e
	r.items[k] = &cp
	return nil
}

func (r *fakeExerciseRepo) Get(_ context.Context, ownerID, exerciseID string) (*domain.Exercise, error) {
	e, ok := r.items[key(ownerID, exerciseID)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeExerciseRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, e := range r.items {
		if e.OwnerID == ownerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) Replace(_ context.Context, e *domain.Exercise) error {
	k := key(e.OwnerID, e.ID)
	if _, ok := r.items[k]; !ok {
		return repository.ErrNotFound
	}
	cp := *e
	r.items[k] = &cp
	return nil
}

func (r *fakeExerciseRepo) Delete(_ context.Context, ownerID, exerciseID string) error {
	k := key(ownerID, exerciseID)
	if _, ok := r.items[k]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, k)
	return nil
}

func seedExercise(t *testing.T, repo *fakeExerciseRepo, ownerID, id string) *domain.Exercise {
	t.Helper()
	e := domain.NewExercise(id, ownerID, "Chin Tuck")
	e.Description = "Draw the chin straight back."
	e.Instructions = []string{"Sit tall.", "Draw the chin back.", "Hold, then relax."}
	e.BodyRegions = []domain.BodyRegion{domain.RegionNeck}
	require.NoError(t, repo.Create(context.Background(), e))
	return e
}

func TestExerciseServiceCreateValidates(t *testing.T) {
	svc := NewExerciseService(newFakeExerciseRepo())

	e := domain.NewExercise("chin_tuck", "", "Chin Tuck")
	e.Instructions = []string{"only one step"}
	e.BodyRegions = []domain.BodyRegion{domain.RegionNeck}
	e.Description = "x"

	_, err := svc.Create(context.Background(), "physio-1", e)
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestExerciseServiceCreateDuplicate(t *testing.T) {
	repo := newFakeExerciseRepo()
	svc := NewExerciseService(repo)
	seedExercise(t, repo, "physio-1", "chin_tuck")

	e := domain.NewExercise("chin_tuck", "", "Chin Tuck")
	e.Description = "Draw the chin straight back."
	e.Instructions = []string{"Sit tall.", "Draw the chin back.", "Hold, then relax."}
	e.BodyRegions = []domain.BodyRegion{domain.RegionNeck}

	_, err := svc.Create(context.Background(), "physio-1", e)
	assert.ErrorIs(t, err, ErrExerciseExists)
}

func TestExerciseServiceGetFallsBackToShared(t *testing.T) {
	repo := newFakeExerciseRepo()
	svc := NewExerciseService(repo)
	seedExercise(t, repo, domain.SharedOwnerID, "chin_tuck")

	got, err := svc.Get(context.Background(), "physio-1", "chin_tuck")
	require.NoError(t, err)
	assert.Equal(t, domain.SharedOwnerID, got.OwnerID)

	_, err = svc.Get(context.Background(), "physio-1", "missing")
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestExerciseServiceOwnCopyShadowsShared(t *testing.T) {
	repo := newFakeExerciseRepo()
	svc := NewExerciseService(repo)
	seedExercise(t, repo, domain.SharedOwnerID, "chin_tuck")
	own := seedExercise(t, repo, "physio-1", "chin_tuck")

	got, err := svc.Get(context.Background(), "physio-1", "chin_tuck")
	require.NoError(t, err)
	assert.Equal(t, own.OwnerID, got.OwnerID)
}

func TestExerciseServiceLocalizedCacheEvictedOnReplace(t *testing.T) {
	repo := newFakeExerciseRepo()
	svc := NewExerciseService(repo)
	e := seedExercise(t, repo, "physio-1", "chin_tuck")
	e.Translations = map[string]domain.Translation{
		"it": {Name: "Retrazione del mento"},
	}
	_, err := svc.Replace(context.Background(), "physio-1", e)
	require.NoError(t, err)

	view, err := svc.GetLocalized(context.Background(), "physio-1", "chin_tuck", "it")
	require.NoError(t, err)
	assert.Equal(t, "Retrazione del mento", view.Name)

	// A write changes the translation; the cached view must not survive.
	e.Translations["it"] = domain.Translation{Name: "Retrazione cervicale"}
	_, err = svc.Replace(context.Background(), "physio-1", e)
	require.NoError(t, err)

	view, err = svc.GetLocalized(context.Background(), "physio-1", "chin_tuck", "it")
	require.NoError(t, err)
	assert.Equal(t, "Retrazione cervicale", view.Name)
}

func TestExerciseServiceReplaceSharedRejected(t *testing.T) {
	repo := newFakeExerciseRepo()
	svc := NewExerciseService(repo)
	shared := seedExercise(t, repo, domain.SharedOwnerID, "chin_tuck")

	_, err := svc.Replace(context.Background(), "physio-1", shared)
	assert.ErrorIs(t, err, ErrSharedReadOnly)
}

func TestExerciseServiceSearch(t *testing.T) {
	repo := newFakeExerciseRepo()
	svc := NewExerciseService(repo)

	own := seedExercise(t, repo, "physio-1", "neck_rotation")
	own.Conditions = []string{"neck stiffness"}
	_, err := svc.Replace(context.Background(), "physio-1", own)
	require.NoError(t, err)

	shared := domain.NewExercise("calf_raises", domain.SharedOwnerID, "Calf Raises")
	shared.Description = "Rise onto the balls of the feet."
	shared.Instructions = []string{"Stand tall.", "Rise up.", "Lower slowly."}
	shared.BodyRegions = []domain.BodyRegion{domain.RegionAnkleFoot}
	shared.Difficulty = domain.DifficultyIntermediate
	require.NoError(t, repo.Create(context.Background(), shared))

	results, err := svc.Search(context.Background(), "physio-1", SearchFilter{BodyRegion: "ankle_foot"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "calf_raises", results[0].ID)

	results, err = svc.Search(context.Background(), "physio-1", SearchFilter{Condition: "stiffness"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "neck_rotation", results[0].ID)
}

func TestExerciseServiceDelete(t *testing.T) {
	repo := newFakeExerciseRepo()
	svc := NewExerciseService(repo)
	seedExercise(t, repo, "physio-1", "chin_tuck")

	require.NoError(t, svc.Delete(context.Background(), "physio-1", "chin_tuck"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "physio-1", "chin_tuck"), ErrExerciseNotFound)
}
