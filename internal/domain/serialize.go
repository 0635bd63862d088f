package domain

import "encoding/json"

// The serialized record shape is a plain map with snake_case keys and
// enums as their canonical strings. It is what the persistence layer
// stores and what the YAML authoring format decodes into. Round trip is
// identity for any valid value: FromDocument(Document(x)) == x.

// Document returns the exercise's serialized record shape.
func (e *Exercise) Document() (map[string]any, error) {
	return toDocument(e)
}

// ExerciseFromDocument rebuilds an exercise from its record shape and
// validates it; invalid records are rejected, not coerced.
func ExerciseFromDocument(doc map[string]any) (*Exercise, error) {
	var e Exercise
	if err := fromDocument(doc, &e); err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// Document returns the routine's serialized record shape.
func (r *Routine) Document() (map[string]any, error) {
	return toDocument(r)
}

// RoutineFromDocument rebuilds a routine from its record shape and
// validates it.
func RoutineFromDocument(doc map[string]any) (*Routine, error) {
	var r Routine
	if err := fromDocument(doc, &r); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func toDocument(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func fromDocument(doc map[string]any, dst any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
