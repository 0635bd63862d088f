package genimage

import "sort"

// Anatomical reference phrases used across the seed catalog. Kept short
// on purpose; long muscle lists blow the prompt budget.
const (
	muscleDeepCervicalFlexors = "deep cervical flexors"
	muscleSuboccipitals       = "suboccipital muscles"
	muscleUpperTrapezius      = "upper trapezius"
	muscleScalenes            = "scalenes"
	muscleRotatorCuff         = "rotator cuff"
	muscleRhomboids           = "rhomboids"
	muscleSerratusAnterior    = "serratus anterior"
	muscleErectorSpinae       = "erector spinae"
	muscleMultifidus          = "multifidus"
	muscleTransverseAbs       = "transverse abdominis"
	muscleRectusAbdominis     = "rectus abdominis"
	muscleObliques            = "obliques"
	musclePiriformis          = "piriformis"
	muscleGluteusMaximus      = "gluteus maximus"
	muscleHamstrings          = "hamstrings"
	muscleGastrocnemius       = "gastrocnemius"
	muscleSoleus              = "soleus"
)

// exercisePrompts is the seed catalog: ordered illustration prompts per
// exercise ID, typically start / movement / end position.
var exercisePrompts = map[string][]ExercisePrompt{
	"chin_tuck": {
		{
			ExerciseID:   "chin_tuck",
			ImageOrder:   1,
			Description:  "seated figure, neutral cervical spine, head balanced over shoulders",
			ViewAngle:    ViewLateral,
			BodyPosition: PositionSeated,
			MusclesShown: []string{"cervical spine neutral"},
			JointsShown:  []string{"cervical alignment"},
		},
		{
			ExerciseID:   "chin_tuck",
			ImageOrder:   2,
			Description:  "cervical retraction, chin drawn back, suboccipital stretch",
			ViewAngle:    ViewLateral,
			BodyPosition: PositionSeated,
			MusclesShown: []string{muscleDeepCervicalFlexors, muscleSuboccipitals},
			JointsShown:  []string{"cervical retraction"},
		},
		{
			ExerciseID:   "chin_tuck",
			ImageOrder:   3,
			Description:  "forward head posture vs corrected alignment, side-by-side comparison",
			ViewAngle:    ViewLateral,
			MusclesShown: []string{"cervical alignment"},
		},
	},
	"pendulum_exercise": {
		{
			ExerciseID:   "pendulum_exercise",
			ImageOrder:   1,
			Description:  "bent forward at waist, hand on table, opposite arm hanging relaxed",
			ViewAngle:    ViewLateral,
			MusclesShown: []string{"relaxed shoulder"},
			JointsShown:  []string{"glenohumeral joint", "hip flexion 90 degrees"},
			Equipment:    []string{"table"},
		},
		{
			ExerciseID:         "pendulum_exercise",
			ImageOrder:         2,
			Description:        "Codman pendulum, arm circumduction movement",
			ViewAngle:          ViewAnterior,
			MusclesShown:       []string{"relaxed shoulder"},
			JointsShown:        []string{"glenohumeral passive movement"},
			Equipment:          []string{"table"},
			MovementIndicators: true,
		},
		{
			ExerciseID:         "pendulum_exercise",
			ImageOrder:         3,
			Description:        "pendulum exercise, arm swinging forward and back",
			ViewAngle:          ViewLateral,
			MusclesShown:       []string{"shoulder passive movement"},
			JointsShown:        []string{"glenohumeral flexion-extension"},
			Equipment:          []string{"table"},
			MovementIndicators: true,
		},
	},
	"cat_cow_stretch": {
		{
			ExerciseID:   "cat_cow_stretch",
			ImageOrder:   1,
			Description:  "tabletop position, neutral spine, wrists under shoulders, knees under hips",
			ViewAngle:    ViewLateral,
			BodyPosition: PositionQuadruped,
			MusclesShown: []string{"neutral spine"},
			JointsShown:  []string{"spine alignment"},
		},
		{
			ExerciseID:   "cat_cow_stretch",
			ImageOrder:   2,
			Description:  "cat pose, spine rounded upward, head down, thoracic and lumbar kyphosis",
			ViewAngle:    ViewLateral,
			BodyPosition: PositionQuadruped,
			MusclesShown: []string{muscleErectorSpinae},
			JointsShown:  []string{"thoracic kyphosis", "lumbar flexion"},
		},
		{
			ExerciseID:   "cat_cow_stretch",
			ImageOrder:   3,
			Description:  "cow pose, spine arched downward, head up, lumbar lordosis",
			ViewAngle:    ViewLateral,
			BodyPosition: PositionQuadruped,
			MusclesShown: []string{muscleErectorSpinae},
			JointsShown:  []string{"lumbar lordosis", "thoracic extension"},
		},
	},
	"piriformis_stretch_supine": {
		{
			ExerciseID:   "piriformis_stretch_supine",
			ImageOrder:   1,
			Description:  "lying on back, knees bent, feet flat, arms at sides",
			ViewAngle:    ViewOblique,
			BodyPosition: PositionSupine,
			MusclesShown: []string{"relaxed position"},
			JointsShown:  []string{"hip flexion", "knee flexion"},
		},
		{
			ExerciseID:   "piriformis_stretch_supine",
			ImageOrder:   2,
			Description:  "figure-four position, ankle crossed over opposite knee",
			ViewAngle:    ViewOblique,
			BodyPosition: PositionSupine,
			MusclesShown: []string{musclePiriformis},
			JointsShown:  []string{"hip external rotation"},
		},
		{
			ExerciseID:   "piriformis_stretch_supine",
			ImageOrder:   3,
			Description:  "deep piriformis stretch, hands behind thigh, pulling leg to chest",
			ViewAngle:    ViewLateral,
			BodyPosition: PositionSupine,
			MusclesShown: []string{musclePiriformis, muscleGluteusMaximus},
			JointsShown:  []string{"hip flexion with external rotation"},
		},
	},
	"calf_raises": {
		{
			ExerciseID:   "calf_raises",
			ImageOrder:   1,
			Description:  "standing, feet hip-width, hand on wall for balance",
			ViewAngle:    ViewLateral,
			BodyPosition: PositionStanding,
			MusclesShown: []string{muscleGastrocnemius, muscleSoleus},
			JointsShown:  []string{"ankle neutral"},
			Equipment:    []string{"wall"},
		},
		{
			ExerciseID:   "calf_raises",
			ImageOrder:   2,
			Description:  "heel raise, standing on toes, calves contracted",
			ViewAngle:    ViewLateral,
			BodyPosition: PositionStanding,
			MusclesShown: []string{muscleGastrocnemius, muscleSoleus},
			JointsShown:  []string{"ankle plantarflexion"},
			Equipment:    []string{"wall"},
		},
		{
			ExerciseID:   "calf_raises",
			ImageOrder:   3,
			Description:  "close-up foot and ankle, calf raise, heel elevated",
			ViewAngle:    ViewCloseUp,
			MusclesShown: []string{muscleGastrocnemius, muscleSoleus},
			JointsShown:  []string{"ankle plantarflexion"},
		},
	},
	"wall_slides": {
		{
			ExerciseID:   "wall_slides",
			ImageOrder:   1,
			Description:  "back against wall, arms in goalpost position at 90 degrees",
			ViewAngle:    ViewLateral,
			BodyPosition: PositionStanding,
			MusclesShown: []string{muscleSerratusAnterior},
			Equipment:    []string{"wall"},
		},
		{
			ExerciseID:         "wall_slides",
			ImageOrder:         2,
			Description:        "wall slide, arms extended overhead, maintaining wall contact",
			ViewAngle:          ViewLateral,
			BodyPosition:       PositionStanding,
			MusclesShown:       []string{muscleSerratusAnterior, muscleRhomboids},
			Equipment:          []string{"wall"},
			MovementIndicators: true,
		},
	},
	"bird_dog": {
		{
			ExerciseID:   "bird_dog",
			ImageOrder:   1,
			Description:  "quadruped, neutral spine, tabletop position",
			ViewAngle:    ViewLateral,
			BodyPosition: PositionQuadruped,
			MusclesShown: []string{muscleMultifidus},
		},
		{
			ExerciseID:   "bird_dog",
			ImageOrder:   2,
			Description:  "bird dog, opposite arm and leg extended, level spine",
			ViewAngle:    ViewLateral,
			BodyPosition: PositionQuadruped,
			MusclesShown: []string{muscleErectorSpinae, muscleGluteusMaximus},
			JointsShown:  []string{"hip extension", "shoulder flexion"},
		},
	},
	"glute_bridge": {
		{
			ExerciseID:   "glute_bridge",
			ImageOrder:   1,
			Description:  "supine, knees bent, feet flat, arms at sides",
			ViewAngle:    ViewLateral,
			BodyPosition: PositionSupine,
		},
		{
			ExerciseID:   "glute_bridge",
			ImageOrder:   2,
			Description:  "glute bridge, hips lifted, straight line shoulders to knees",
			ViewAngle:    ViewLateral,
			BodyPosition: PositionSupine,
			MusclesShown: []string{muscleGluteusMaximus, muscleHamstrings},
			JointsShown:  []string{"hip extension"},
		},
	},
	"dead_bug": {
		{
			ExerciseID:   "dead_bug",
			ImageOrder:   1,
			Description:  "supine, arms toward ceiling, hips and knees bent 90 degrees",
			ViewAngle:    ViewLateral,
			BodyPosition: PositionSupine,
			MusclesShown: []string{muscleTransverseAbs},
		},
		{
			ExerciseID:         "dead_bug",
			ImageOrder:         2,
			Description:        "dead bug, opposite arm and leg extended, back flat",
			ViewAngle:          ViewLateral,
			BodyPosition:       PositionSupine,
			MusclesShown:       []string{muscleTransverseAbs, muscleObliques},
			MovementIndicators: true,
		},
	},
	"plank": {
		{
			ExerciseID:   "plank",
			ImageOrder:   1,
			Description:  "forearm plank, straight line head to heels, core engaged",
			ViewAngle:    ViewLateral,
			MusclesShown: []string{muscleRectusAbdominis, muscleObliques},
		},
	},
}

// PromptsFor returns the catalog prompts for an exercise, or an empty
// slice when none are defined. The result is a copy.
func PromptsFor(exerciseID string) []ExercisePrompt {
	prompts := exercisePrompts[exerciseID]
	out := make([]ExercisePrompt, len(prompts))
	copy(out, prompts)
	return out
}

// ExerciseIDs lists every exercise with catalog prompts, sorted.
func ExerciseIDs() []string {
	ids := make([]string, 0, len(exercisePrompts))
	for id := range exercisePrompts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
