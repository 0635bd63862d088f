package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRoutine() *Routine {
	r := NewRoutine("r-1", "physio-1", "Maria Rossi")
	r.Title = "Neck recovery program"
	r.Diagnosis = "Cervicogenic headache"
	r.TherapeuticGoals = []string{"reduce headache frequency"}
	r.Exercises = []RoutineExercise{
		{ExerciseID: "chin_tuck", Order: 1},
		{ExerciseID: "wall_slides", Order: 2},
	}
	return r
}

func TestRoutineValidateOK(t *testing.T) {
	require.NoError(t, validRoutine().Validate())
}

func TestRoutineValidateMissingCoreFields(t *testing.T) {
	r := validRoutine()
	r.Diagnosis = ""
	r.TherapeuticGoals = nil

	err := r.Validate()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)

	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fe.Field
	}
	assert.Contains(t, fields, "diagnosis")
	assert.Contains(t, fields, "therapeutic_goals")
}

func TestRoutineValidateEmptyExercises(t *testing.T) {
	r := validRoutine()
	r.Exercises = []RoutineExercise{}
	assert.Error(t, r.Validate())
}

func TestRoutineExerciseOrders(t *testing.T) {
	tests := []struct {
		name   string
		orders []int
		ok     bool
	}{
		{"contiguous", []int{1, 2, 3}, true},
		{"shuffled", []int{2, 3, 1}, true},
		{"duplicate", []int{1, 1}, false},
		{"gap", []int{1, 3, 4}, false},
		{"zero based", []int{0, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRoutine()
			r.Exercises = nil
			for _, o := range tt.orders {
				r.Exercises = append(r.Exercises, RoutineExercise{
					ExerciseID: "chin_tuck",
					Order:      o,
				})
			}
			err := r.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRoutineStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to RoutineStatus
		allowed  bool
	}{
		{RoutineDraft, RoutineReady, true},
		{RoutineDraft, RoutineDelivered, false},
		{RoutineReady, RoutineDelivered, true},
		{RoutineReady, RoutineDraft, true},
		{RoutineDelivered, RoutineDraft, false},
		{RoutineDelivered, RoutineReady, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestNewRoutineDefaults(t *testing.T) {
	r := NewRoutine("r-2", "physio-1", "Jan Kowalski")
	assert.Equal(t, RoutineDraft, r.Status)
	assert.Equal(t, "once daily", r.Frequency)
	assert.Equal(t, DefaultWarningSigns(), r.WarningSigns)
}

func TestRoutineDocumentRoundTrip(t *testing.T) {
	r := validRoutine()
	weeks := 6
	r.DurationWeeks = &weeks

	doc, err := r.Document()
	require.NoError(t, err)

	restored, err := RoutineFromDocument(doc)
	require.NoError(t, err)

	assert.Equal(t, r.ID, restored.ID)
	assert.Equal(t, r.Exercises, restored.Exercises)
	assert.Equal(t, r.Status, restored.Status)
	require.NotNil(t, restored.DurationWeeks)
	assert.Equal(t, 6, *restored.DurationWeeks)
}
