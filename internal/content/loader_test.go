package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"physiohub/physio-app/internal/domain"
)

const chinTuckYAML = `
id: chin_tuck
name: Chin Tuck
description: Draw the chin straight back.
instructions:
  - Sit tall.
  - Draw the chin back.
  - Hold, then relax.
body_regions:
  - neck
conditions:
  - forward head posture
therapeutic_goals:
  - postural correction
difficulty: beginner
equipment:
  - none
`

const calfRaisesYAML = `
id: calf_raises
name: Calf Raises
description: Rise onto the balls of the feet.
instructions:
  - Stand tall near a wall.
  - Rise onto the balls of your feet.
  - Lower down slowly.
body_regions:
  - ankle_foot
difficulty: intermediate
equipment:
  - wall
`

func writeContentDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLibraryLoad(t *testing.T) {
	dir := writeContentDir(t, map[string]string{
		"chin_tuck.yaml":   chinTuckYAML,
		"calf_raises.yaml": calfRaisesYAML,
		"_template.yaml":   "id: broken\n", // must be skipped
	})

	lib := NewLibrary(dir)
	require.NoError(t, lib.Load())

	assert.Equal(t, 2, lib.Len())
	assert.Equal(t, []string{"calf_raises", "chin_tuck"}, lib.IDs())

	exercise, ok := lib.Get("chin_tuck")
	require.True(t, ok)
	// Authoring defaults are filled in on load.
	assert.Equal(t, domain.SharedOwnerID, exercise.OwnerID)
	assert.Equal(t, "en", exercise.PrimaryLanguage)
	assert.Equal(t, domain.SourceManual, exercise.Source)
}

func TestLibraryLoadRejectsInvalidDocument(t *testing.T) {
	dir := writeContentDir(t, map[string]string{
		"bad.yaml": "id: bad\nname: Bad\ndescription: x\ninstructions: [only one]\nbody_regions: [neck]\n",
	})

	lib := NewLibrary(dir)
	err := lib.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestLibraryLoadRejectsDuplicateIDs(t *testing.T) {
	dir := writeContentDir(t, map[string]string{
		"a.yaml": chinTuckYAML,
		"b.yaml": chinTuckYAML,
	})

	err := NewLibrary(dir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate exercise id")
}

func TestLibrarySearch(t *testing.T) {
	dir := writeContentDir(t, map[string]string{
		"chin_tuck.yaml":   chinTuckYAML,
		"calf_raises.yaml": calfRaisesYAML,
	})
	lib := NewLibrary(dir)
	require.NoError(t, lib.Load())

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"by region", Filter{BodyRegion: "neck"}, []string{"chin_tuck"}},
		{"by condition substring", Filter{Condition: "head posture"}, []string{"chin_tuck"}},
		{"by difficulty", Filter{Difficulty: "intermediate"}, []string{"calf_raises"}},
		{"by equipment", Filter{Equipment: "wall"}, []string{"calf_raises"}},
		{"no match", Filter{BodyRegion: "knee"}, nil},
		{"empty filter matches all", Filter{}, []string{"calf_raises", "chin_tuck"}},
		{"max results", Filter{MaxResults: 1}, []string{"calf_raises"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, e := range lib.Search(tt.filter) {
				got = append(got, e.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
