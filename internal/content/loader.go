package content

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"physiohub/physio-app/internal/domain"
)

// Library loads the YAML-authored exercise catalog from a content
// directory. Files whose name starts with "_" (the authoring template)
// are skipped. Documents are validated through the domain model on
// load; an invalid document fails the whole load so authors fix it
// rather than silently losing content.
type Library struct {
	dir string

	mu        sync.RWMutex
	exercises map[string]*domain.Exercise
}

func NewLibrary(dir string) *Library {
	return &Library{
		dir:       dir,
		exercises: make(map[string]*domain.Exercise),
	}
}

// Load walks the content directory and (re)builds the in-memory index.
func (l *Library) Load() error {
	loaded := make(map[string]*domain.Exercise)

	err := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, "_") {
			return nil // authoring template and drafts
		}
		if ext := filepath.Ext(name); ext != ".yaml" && ext != ".yml" {
			return nil
		}

		exercise, err := loadFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if _, dup := loaded[exercise.ID]; dup {
			return fmt.Errorf("%s: duplicate exercise id %q", path, exercise.ID)
		}
		loaded[exercise.ID] = exercise
		return nil
	})
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.exercises = loaded
	l.mu.Unlock()
	return nil
}

func loadFile(path string) (*domain.Exercise, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var exercise domain.Exercise
	if err := yaml.Unmarshal(raw, &exercise); err != nil {
		return nil, err
	}

	// Authoring documents omit the fields the pipeline fills in.
	if exercise.OwnerID == "" {
		exercise.OwnerID = domain.SharedOwnerID
	}
	if exercise.PrimaryLanguage == "" {
		exercise.PrimaryLanguage = "en"
	}
	if exercise.Difficulty == "" {
		exercise.Difficulty = domain.DifficultyBeginner
	}
	if exercise.Source == "" {
		exercise.Source = domain.SourceManual
	}

	if err := exercise.Validate(); err != nil {
		return nil, err
	}
	return &exercise, nil
}

// Get looks up one exercise by ID.
func (l *Library) Get(id string) (*domain.Exercise, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	exercise, ok := l.exercises[id]
	return exercise, ok
}

// IDs lists every loaded exercise ID, sorted.
func (l *Library) IDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := make([]string, 0, len(l.exercises))
	for id := range l.exercises {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of loaded exercises.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.exercises)
}

// Filter narrows a search; empty fields match everything. Condition and
// therapeutic goal match on substring, the rest on exact (case
// insensitive) value, mirroring how physios search the catalog.
type Filter struct {
	BodyRegion      string
	Condition       string
	Difficulty      string
	TherapeuticGoal string
	Equipment       string
	MaxResults      int
}

// Search returns exercises matching the filter, sorted by ID.
func (l *Library) Search(f Filter) []*domain.Exercise {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var results []*domain.Exercise
	for _, id := range sortedKeys(l.exercises) {
		exercise := l.exercises[id]
		if !matches(exercise, f) {
			continue
		}
		results = append(results, exercise)
		if f.MaxResults > 0 && len(results) >= f.MaxResults {
			break
		}
	}
	return results
}

func sortedKeys(m map[string]*domain.Exercise) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func matches(e *domain.Exercise, f Filter) bool {
	if f.BodyRegion != "" && !containsRegion(e.BodyRegions, f.BodyRegion) {
		return false
	}
	if f.Condition != "" && !containsSubstring(e.Conditions, f.Condition) {
		return false
	}
	if f.Difficulty != "" && !strings.EqualFold(string(e.Difficulty), f.Difficulty) {
		return false
	}
	if f.TherapeuticGoal != "" && !containsSubstring(e.TherapeuticGoals, f.TherapeuticGoal) {
		return false
	}
	if f.Equipment != "" && !containsFold(e.Equipment, f.Equipment) {
		return false
	}
	return true
}

func containsRegion(regions []domain.BodyRegion, want string) bool {
	for _, r := range regions {
		if strings.EqualFold(string(r), want) {
			return true
		}
	}
	return false
}

func containsFold(items []string, want string) bool {
	for _, item := range items {
		if strings.EqualFold(item, want) {
			return true
		}
	}
	return false
}

func containsSubstring(items []string, want string) bool {
	want = strings.ToLower(want)
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), want) {
			return true
		}
	}
	return false
}
