package domain

import (
	"fmt"
	"time"
)

// RoutineStatus is the delivery lifecycle of a routine. Delivered is
// terminal: a delivered routine is frozen for audit purposes.
type RoutineStatus string

const (
	RoutineDraft     RoutineStatus = "draft"
	RoutineReady     RoutineStatus = "ready"
	RoutineDelivered RoutineStatus = "delivered"
)

func (s RoutineStatus) Valid() bool {
	switch s {
	case RoutineDraft, RoutineReady, RoutineDelivered:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status change is allowed. A ready
// routine may be reopened as a draft; nothing leaves delivered.
func (s RoutineStatus) CanTransitionTo(next RoutineStatus) bool {
	switch s {
	case RoutineDraft:
		return next == RoutineReady
	case RoutineReady:
		return next == RoutineDraft || next == RoutineDelivered
	default:
		return false
	}
}

// RoutineExercise references an exercise from the library with
// patient-specific parameter overrides. Nil override means "use the
// exercise default".
type RoutineExercise struct {
	ExerciseID string `bson:"exercise_id" json:"exercise_id" yaml:"exercise_id" validate:"required"`
	Order      int    `bson:"order" json:"order" yaml:"order"`

	Sets        *int `bson:"sets,omitempty" json:"sets,omitempty" yaml:"sets,omitempty" validate:"omitempty,gt=0"`
	Reps        *int `bson:"reps,omitempty" json:"reps,omitempty" yaml:"reps,omitempty" validate:"omitempty,gt=0"`
	HoldSeconds *int `bson:"hold_seconds,omitempty" json:"hold_seconds,omitempty" yaml:"hold_seconds,omitempty" validate:"omitempty,gt=0"`
	RestSeconds *int `bson:"rest_seconds,omitempty" json:"rest_seconds,omitempty" yaml:"rest_seconds,omitempty" validate:"omitempty,gt=0"`

	Notes       string `bson:"notes,omitempty" json:"notes,omitempty" yaml:"notes,omitempty"`
	Progression string `bson:"progression,omitempty" json:"progression,omitempty" yaml:"progression,omitempty"`

	IsWarmup   bool `bson:"is_warmup,omitempty" json:"is_warmup,omitempty" yaml:"is_warmup,omitempty"`
	IsCooldown bool `bson:"is_cooldown,omitempty" json:"is_cooldown,omitempty" yaml:"is_cooldown,omitempty"`
}

// Routine is a patient-specific program composed by a physio, usually
// from an AI-assisted draft. The patient descriptor is intentionally
// weak: patients are not first-class entities here.
type Routine struct {
	ID       string `bson:"id" json:"id" yaml:"id" validate:"required"`
	PhysioID string `bson:"physio_id" json:"physio_id" yaml:"physio_id" validate:"required"`

	PatientName     string `bson:"patient_name" json:"patient_name" yaml:"patient_name" validate:"required"`
	PatientLanguage string `bson:"patient_language" json:"patient_language" yaml:"patient_language"`
	PatientID       string `bson:"patient_id,omitempty" json:"patient_id,omitempty" yaml:"patient_id,omitempty"`

	Diagnosis        string   `bson:"diagnosis" json:"diagnosis" yaml:"diagnosis" validate:"required"`
	TherapeuticGoals []string `bson:"therapeutic_goals" json:"therapeutic_goals" yaml:"therapeutic_goals" validate:"min=1"`
	Precautions      []string `bson:"precautions,omitempty" json:"precautions,omitempty" yaml:"precautions,omitempty"`

	Title     string            `bson:"title" json:"title" yaml:"title" validate:"required"`
	Exercises []RoutineExercise `bson:"exercises" json:"exercises" yaml:"exercises" validate:"min=1"`

	Frequency            string `bson:"frequency" json:"frequency" yaml:"frequency"`
	DurationWeeks        *int   `bson:"duration_weeks,omitempty" json:"duration_weeks,omitempty" yaml:"duration_weeks,omitempty" validate:"omitempty,gt=0"`
	EstimatedTimeMinutes *int   `bson:"estimated_time_minutes,omitempty" json:"estimated_time_minutes,omitempty" yaml:"estimated_time_minutes,omitempty" validate:"omitempty,gt=0"`

	GeneralNotes string   `bson:"general_notes,omitempty" json:"general_notes,omitempty" yaml:"general_notes,omitempty"`
	WarningSigns []string `bson:"warning_signs,omitempty" json:"warning_signs,omitempty" yaml:"warning_signs,omitempty"`

	Status      RoutineStatus `bson:"status" json:"status" yaml:"status"`
	DeliveryURL string        `bson:"delivery_url,omitempty" json:"delivery_url,omitempty" yaml:"delivery_url,omitempty"`
	PDFURL      string        `bson:"pdf_url,omitempty" json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`

	CreatedAt   time.Time  `bson:"created_at,omitempty" json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   time.Time  `bson:"updated_at,omitempty" json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	DeliveredAt *time.Time `bson:"delivered_at,omitempty" json:"delivered_at,omitempty" yaml:"delivered_at,omitempty"`

	AIGenerated bool   `bson:"ai_generated,omitempty" json:"ai_generated,omitempty" yaml:"ai_generated,omitempty"`
	AIPrompt    string `bson:"ai_prompt,omitempty" json:"ai_prompt,omitempty" yaml:"ai_prompt,omitempty"`
}

// DefaultWarningSigns are included on every new routine unless the
// physio replaces them.
func DefaultWarningSigns() []string {
	return []string{
		"Stop immediately if you experience sharp or sudden pain",
		"Contact your physiotherapist if symptoms worsen",
	}
}

// NewRoutine returns a draft routine with fresh containers and the
// standard defaults.
func NewRoutine(id, physioID, patientName string) *Routine {
	return &Routine{
		ID:               id,
		PhysioID:         physioID,
		PatientName:      patientName,
		PatientLanguage:  "en",
		TherapeuticGoals: []string{},
		Precautions:      []string{},
		Exercises:        []RoutineExercise{},
		Frequency:        "once daily",
		WarningSigns:     DefaultWarningSigns(),
		Status:           RoutineDraft,
	}
}

// Validate enforces the routine invariants and reports every violation.
func (r *Routine) Validate() error {
	errs := structErrors(r)

	if r.PatientLanguage != "" && !langPattern.MatchString(r.PatientLanguage) {
		errs = append(errs, FieldError{Field: "patient_language", Reason: "must be an ISO 639-1 language code"})
	}

	switch {
	case r.Status == "":
		errs = append(errs, FieldError{Field: "status", Reason: "is required"})
	case !r.Status.Valid():
		errs = append(errs, FieldError{Field: "status", Reason: fmt.Sprintf("unknown value %q", string(r.Status))})
	}

	errs = append(errs, validateExerciseOrders(r.Exercises)...)

	return errs.ErrOrNil()
}

// validateExerciseOrders checks that ordering positions are unique and
// contiguous starting at 1, mirroring the image order invariant.
func validateExerciseOrders(exercises []RoutineExercise) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[int]bool, len(exercises))
	for i, re := range exercises {
		if re.Order < 1 || re.Order > len(exercises) {
			errs = append(errs, FieldError{
				Field:  fmt.Sprintf("exercises[%d].order", i),
				Reason: fmt.Sprintf("must be between 1 and %d", len(exercises)),
			})
			continue
		}
		if seen[re.Order] {
			errs = append(errs, FieldError{
				Field:  fmt.Sprintf("exercises[%d].order", i),
				Reason: fmt.Sprintf("duplicate order position %d", re.Order),
			})
		}
		seen[re.Order] = true
	}
	return errs
}
