package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Difficulty levels for an exercise.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// BodyRegion is the closed vocabulary of body regions, used both for
// categorization and for structured prompt construction.
type BodyRegion string

const (
	RegionNeck      BodyRegion = "neck"
	RegionShoulder  BodyRegion = "shoulder"
	RegionUpperBack BodyRegion = "upper_back"
	RegionLowerBack BodyRegion = "lower_back"
	RegionChest     BodyRegion = "chest"
	RegionCore      BodyRegion = "core"
	RegionHip       BodyRegion = "hip"
	RegionKnee      BodyRegion = "knee"
	RegionAnkleFoot BodyRegion = "ankle_foot"
	RegionWristHand BodyRegion = "wrist_hand"
	RegionElbow     BodyRegion = "elbow"
	RegionFullBody  BodyRegion = "full_body"
)

var allBodyRegions = []BodyRegion{
	RegionNeck, RegionShoulder, RegionUpperBack, RegionLowerBack,
	RegionChest, RegionCore, RegionHip, RegionKnee,
	RegionAnkleFoot, RegionWristHand, RegionElbow, RegionFullBody,
}

func (r BodyRegion) Valid() bool {
	for _, known := range allBodyRegions {
		if r == known {
			return true
		}
	}
	return false
}

// BodyRegions returns the full closed vocabulary, in canonical order.
func BodyRegions() []BodyRegion {
	out := make([]BodyRegion, len(allBodyRegions))
	copy(out, allBodyRegions)
	return out
}

// ExerciseSource records how an exercise entered the library.
type ExerciseSource string

const (
	SourceManual     ExerciseSource = "manual"      // Physio created by hand
	SourceAIAssisted ExerciseSource = "ai_assisted" // AI drafted, physio reviewed
	SourceImported   ExerciseSource = "imported"
	SourceShared     ExerciseSource = "shared" // Copied from the shared library
)

func (s ExerciseSource) Valid() bool {
	switch s {
	case SourceManual, SourceAIAssisted, SourceImported, SourceShared:
		return true
	}
	return false
}

// SharedOwnerID is the owner scope for community exercises. An exercise
// lives either in a physio-scoped partition or the shared one, never both.
const SharedOwnerID = "shared"

// ImageRef points at a stored exercise illustration. Order is the
// display position: 1=start, 2=mid, 3=end.
type ImageRef struct {
	URL     string `bson:"url" json:"url" yaml:"url"`
	AltText string `bson:"alt_text" json:"alt_text" yaml:"alt_text"`
	Order   int    `bson:"order" json:"order" yaml:"order"`
	Caption string `bson:"caption,omitempty" json:"caption,omitempty" yaml:"caption,omitempty"`
}

// Translation is a partial override of the translatable fields. Missing
// fields fall back to the primary language at read time (see Localize).
type Translation struct {
	Language       string   `bson:"language,omitempty" json:"language,omitempty" yaml:"language,omitempty"`
	Name           string   `bson:"name,omitempty" json:"name,omitempty" yaml:"name,omitempty"`
	Description    string   `bson:"description,omitempty" json:"description,omitempty" yaml:"description,omitempty"`
	Instructions   []string `bson:"instructions,omitempty" json:"instructions,omitempty" yaml:"instructions,omitempty"`
	CommonMistakes []string `bson:"common_mistakes,omitempty" json:"common_mistakes,omitempty" yaml:"common_mistakes,omitempty"`
}

// Exercise is a reusable content unit in a physio's library (or the
// shared one). Content is stored in the primary language; translations
// are cached partial overrides keyed by language code.
type Exercise struct {
	ID      string `bson:"id" json:"id" yaml:"id" validate:"required"`
	OwnerID string `bson:"owner_id" json:"owner_id" yaml:"owner_id" validate:"required"`

	Name            string   `bson:"name" json:"name" yaml:"name" validate:"required,min=3,max=100"`
	PrimaryLanguage string   `bson:"primary_language" json:"primary_language" yaml:"primary_language"`
	Description     string   `bson:"description" json:"description" yaml:"description" validate:"required"`
	Instructions    []string `bson:"instructions" json:"instructions" yaml:"instructions" validate:"min=3,dive,required"`
	CommonMistakes  []string `bson:"common_mistakes,omitempty" json:"common_mistakes,omitempty" yaml:"common_mistakes,omitempty"`

	BodyRegions       []BodyRegion `bson:"body_regions" json:"body_regions" yaml:"body_regions" validate:"min=1"`
	Conditions        []string     `bson:"conditions,omitempty" json:"conditions,omitempty" yaml:"conditions,omitempty"`
	TherapeuticGoals  []string     `bson:"therapeutic_goals,omitempty" json:"therapeutic_goals,omitempty" yaml:"therapeutic_goals,omitempty"`
	Contraindications []string     `bson:"contraindications,omitempty" json:"contraindications,omitempty" yaml:"contraindications,omitempty"`

	Difficulty Difficulty `bson:"difficulty" json:"difficulty" yaml:"difficulty"`
	Equipment  []string   `bson:"equipment,omitempty" json:"equipment,omitempty" yaml:"equipment,omitempty"`

	// Default parameters, overridable per routine. Positive when present.
	DefaultSets        *int `bson:"default_sets,omitempty" json:"default_sets,omitempty" yaml:"default_sets,omitempty" validate:"omitempty,gt=0"`
	DefaultReps        *int `bson:"default_reps,omitempty" json:"default_reps,omitempty" yaml:"default_reps,omitempty" validate:"omitempty,gt=0"`
	DefaultHoldSeconds *int `bson:"default_hold_seconds,omitempty" json:"default_hold_seconds,omitempty" yaml:"default_hold_seconds,omitempty" validate:"omitempty,gt=0"`
	DefaultRestSeconds *int `bson:"default_rest_seconds,omitempty" json:"default_rest_seconds,omitempty" yaml:"default_rest_seconds,omitempty" validate:"omitempty,gt=0"`

	Images   []ImageRef `bson:"images,omitempty" json:"images,omitempty" yaml:"images,omitempty" validate:"max=3"`
	VideoURL string     `bson:"video_url,omitempty" json:"video_url,omitempty" yaml:"video_url,omitempty"`

	Translations map[string]Translation `bson:"translations,omitempty" json:"translations,omitempty" yaml:"translations,omitempty"`

	Source ExerciseSource `bson:"source,omitempty" json:"source,omitempty" yaml:"source,omitempty"`
	Tags   []string       `bson:"tags,omitempty" json:"tags,omitempty" yaml:"tags,omitempty"`

	CreatedAt time.Time `bson:"created_at,omitempty" json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

var (
	slugPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	langPattern = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)
)

// NewExercise returns an exercise with fresh containers and the usual
// defaults. Containers are allocated per instance so callers can append
// without aliasing another exercise's state.
func NewExercise(id, ownerID, name string) *Exercise {
	return &Exercise{
		ID:              id,
		OwnerID:         ownerID,
		Name:            name,
		PrimaryLanguage: "en",
		Instructions:    []string{},
		CommonMistakes:  []string{},
		BodyRegions:     []BodyRegion{},
		Difficulty:      DifficultyBeginner,
		Equipment:       []string{"none"},
		Translations:    map[string]Translation{},
		Source:          SourceManual,
	}
}

// Validate enforces every constructive invariant of the exercise and
// reports all violations at once as ValidationErrors.
func (e *Exercise) Validate() error {
	errs := structErrors(e)

	if e.ID != "" && !slugPattern.MatchString(e.ID) {
		errs = append(errs, FieldError{Field: "id", Reason: "must be a lowercase slug"})
	}
	if e.PrimaryLanguage != "" && !langPattern.MatchString(e.PrimaryLanguage) {
		errs = append(errs, FieldError{Field: "primary_language", Reason: "must be an ISO 639-1 language code"})
	}

	switch {
	case e.Difficulty == "":
		errs = append(errs, FieldError{Field: "difficulty", Reason: "is required"})
	case !e.Difficulty.Valid():
		errs = append(errs, FieldError{Field: "difficulty", Reason: fmt.Sprintf("unknown value %q", string(e.Difficulty))})
	}

	for i, region := range e.BodyRegions {
		if !region.Valid() {
			errs = append(errs, FieldError{
				Field:  fmt.Sprintf("body_regions[%d]", i),
				Reason: fmt.Sprintf("unknown body region %q", string(region)),
			})
		}
	}

	if e.Source != "" && !e.Source.Valid() {
		errs = append(errs, FieldError{Field: "source", Reason: fmt.Sprintf("unknown value %q", string(e.Source))})
	}

	for i, item := range e.Equipment {
		if !slugPattern.MatchString(item) {
			errs = append(errs, FieldError{
				Field:  fmt.Sprintf("equipment[%d]", i),
				Reason: "must be a lowercase slug",
			})
		}
	}

	errs = append(errs, validateImageOrders(e.Images)...)

	for lang := range e.Translations {
		if !langPattern.MatchString(lang) {
			errs = append(errs, FieldError{
				Field:  "translations." + lang,
				Reason: "key must be an ISO 639-1 language code",
			})
			continue
		}
		if tr := e.Translations[lang]; tr.Language != "" && tr.Language != lang {
			errs = append(errs, FieldError{
				Field:  "translations." + lang + ".language",
				Reason: "does not match the translation key",
			})
		}
	}

	return errs.ErrOrNil()
}

// validateImageOrders checks that image order indices are unique and
// contiguous starting at 1. Any gap or duplicate is an error.
func validateImageOrders(images []ImageRef) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[int]bool, len(images))
	for i, img := range images {
		if img.Order < 1 || img.Order > len(images) {
			errs = append(errs, FieldError{
				Field:  fmt.Sprintf("images[%d].order", i),
				Reason: fmt.Sprintf("must be between 1 and %d", len(images)),
			})
			continue
		}
		if seen[img.Order] {
			errs = append(errs, FieldError{
				Field:  fmt.Sprintf("images[%d].order", i),
				Reason: fmt.Sprintf("duplicate order index %d", img.Order),
			})
		}
		seen[img.Order] = true
	}
	// When every index is in range and unique, 1..n is covered, so no
	// separate gap check is needed.
	return errs
}
