package genimage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFullPrompt(t *testing.T) {
	p := ExercisePrompt{
		ExerciseID:         "wall_slides",
		ImageOrder:         2,
		Description:        "arms sliding overhead along the wall",
		ViewAngle:          ViewPosterior,
		BodyPosition:       PositionStanding,
		MusclesShown:       []string{"lower trapezius", "serratus anterior"},
		JointsShown:        []string{"scapulothoracic rhythm"},
		Equipment:          []string{"wall"},
		MovementIndicators: true,
	}

	got := p.Build(StylePrefix, StyleSuffix)

	want := "medical diagram, simple line art, accurate anatomy, " +
		"posterior view, " +
		"standing position, upright posture, " +
		"arms sliding overhead along the wall, " +
		"showing lower trapezius, serratus anterior, " +
		"highlighting scapulothoracic rhythm, " +
		"using wall, " +
		"with dotted lines indicating movement direction and range, " +
		"white background, no text, black lines"
	assert.Equal(t, want, got)
}

func TestBuildOmitsEmptyClauses(t *testing.T) {
	p := ExercisePrompt{
		ExerciseID:  "chin_tuck",
		ImageOrder:  1,
		Description: "neutral cervical spine",
		ViewAngle:   ViewLateral,
	}

	got := p.Build(StylePrefix, StyleSuffix)

	assert.NotContains(t, got, "showing")
	assert.NotContains(t, got, "highlighting")
	assert.NotContains(t, got, "using")
	assert.NotContains(t, got, "dotted lines")
	// No leftover connectives between clauses.
	assert.NotContains(t, got, ", , ")
	assert.Equal(t, "medical diagram, simple line art, accurate anatomy, "+
		"lateral view, neutral cervical spine, "+
		"white background, no text, black lines", got)
}

func TestBuildWithoutStyleWrapping(t *testing.T) {
	p := ExercisePrompt{
		Description: "hip hinge pattern",
		ViewAngle:   ViewLateral,
	}

	got := p.Build("", "")
	assert.Equal(t, "lateral view, hip hinge pattern", got)
}

func TestCatalogPromptsAreOrderedAndBounded(t *testing.T) {
	ids := ExerciseIDs()
	assert.NotEmpty(t, ids)
	assert.IsIncreasing(t, ids)

	for _, id := range ids {
		prompts := PromptsFor(id)
		assert.NotEmpty(t, prompts, id)
		assert.LessOrEqual(t, len(prompts), 3, id)
		for i, p := range prompts {
			assert.Equal(t, id, p.ExerciseID)
			assert.Equal(t, i+1, p.ImageOrder, "%s prompt %d", id, i)
			assert.NotEmpty(t, p.Description, id)
			assert.NotEmpty(t, string(p.ViewAngle), id)
		}
	}
}

func TestCatalogPromptsStayWithinTokenBudget(t *testing.T) {
	for _, id := range ExerciseIDs() {
		for _, p := range PromptsFor(id) {
			text := p.Build(StylePrefix, StyleSuffix)
			// Rough proxy for the CLIP token limit.
			assert.Less(t, len(strings.Fields(text)), 77, "%s/%d", id, p.ImageOrder)
		}
	}
}

func TestPromptsForReturnsCopy(t *testing.T) {
	a := PromptsFor("chin_tuck")
	a[0].Description = "mutated"

	b := PromptsFor("chin_tuck")
	assert.NotEqual(t, "mutated", b[0].Description)
}
