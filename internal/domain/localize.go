package domain

// LocalizedExercise is a read-only view of an exercise in one language.
// Each translatable field carries the translation's value when present
// and the primary-language value otherwise.
type LocalizedExercise struct {
	ID             string       `json:"id"`
	Language       string       `json:"language"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Instructions   []string     `json:"instructions"`
	CommonMistakes []string     `json:"common_mistakes,omitempty"`
	BodyRegions    []BodyRegion `json:"body_regions"`
	Difficulty     Difficulty   `json:"difficulty"`
	Images         []ImageRef   `json:"images,omitempty"`
}

// Localize resolves the exercise content for a language. Pure function:
// no mutation, field-by-field fallback to the primary language when the
// translation is missing or partial. Requesting the primary language
// (or an unknown one) yields the primary content.
func Localize(e *Exercise, language string) LocalizedExercise {
	view := LocalizedExercise{
		ID:             e.ID,
		Language:       e.PrimaryLanguage,
		Name:           e.Name,
		Description:    e.Description,
		Instructions:   append([]string(nil), e.Instructions...),
		CommonMistakes: append([]string(nil), e.CommonMistakes...),
		BodyRegions:    append([]BodyRegion(nil), e.BodyRegions...),
		Difficulty:     e.Difficulty,
		Images:         append([]ImageRef(nil), e.Images...),
	}

	tr, ok := e.Translations[language]
	if !ok || language == e.PrimaryLanguage {
		return view
	}

	view.Language = language
	if tr.Name != "" {
		view.Name = tr.Name
	}
	if tr.Description != "" {
		view.Description = tr.Description
	}
	if len(tr.Instructions) > 0 {
		view.Instructions = append([]string(nil), tr.Instructions...)
	}
	if len(tr.CommonMistakes) > 0 {
		view.CommonMistakes = append([]string(nil), tr.CommonMistakes...)
	}
	return view
}
