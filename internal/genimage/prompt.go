package genimage

import "strings"

// Style phrases embedded in every prompt. Kept concise so prompts stay
// under typical CLIP token limits -- that budget is the caller's
// concern, not enforced here.
const (
	StylePrefix = "medical diagram, simple line art, accurate anatomy"
	StyleSuffix = "white background, no text, black lines"

	NegativePrompt = "photo, photograph, realistic skin, colored background, text, labels, " +
		"watermark, blurry, low quality, distorted anatomy, extra limbs, " +
		"painterly, sketch, shading, gradients"
)

// ViewAngle is the closed vocabulary of anatomical viewing angles. The
// value is the phrase used verbatim in prompts.
type ViewAngle string

const (
	ViewLateral      ViewAngle = "lateral view"
	ViewAnterior     ViewAngle = "anterior view"
	ViewPosterior    ViewAngle = "posterior view"
	ViewLateralRight ViewAngle = "right lateral view"
	ViewLateralLeft  ViewAngle = "left lateral view"
	ViewSuperior     ViewAngle = "superior view"
	ViewOblique      ViewAngle = "oblique view"
	ViewCloseUp      ViewAngle = "close-up detail view"
)

// BodyPosition is the closed vocabulary of body positions common in
// physiotherapy. The value is the phrase used verbatim in prompts.
type BodyPosition string

const (
	PositionStanding  BodyPosition = "standing position, upright posture"
	PositionSeated    BodyPosition = "seated position on chair, upright posture"
	PositionSupine    BodyPosition = "supine position, lying on back"
	PositionProne     BodyPosition = "prone position, lying face down"
	PositionQuadruped BodyPosition = "quadruped position, on hands and knees"
	PositionSideLying BodyPosition = "side-lying position"
	PositionKneeling  BodyPosition = "kneeling position"
)

// ExercisePrompt describes one illustration of an exercise. Value
// object owned by the prompt catalog; no independent identity.
type ExercisePrompt struct {
	ExerciseID  string
	ImageOrder  int
	Description string

	ViewAngle    ViewAngle
	BodyPosition BodyPosition // optional

	MusclesShown []string
	JointsShown  []string
	Equipment    []string

	// MovementIndicators adds the dotted-lines phrase for movement
	// direction and range.
	MovementIndicators bool
}

// Build assembles the full prompt text: prefix, view angle, body
// position, description, "showing <muscles>", "highlighting <joints>",
// "using <equipment>", movement indicator phrase, suffix -- comma
// separated, in that order, with empty clauses omitted entirely.
func (p ExercisePrompt) Build(stylePrefix, styleSuffix string) string {
	parts := make([]string, 0, 9)

	if stylePrefix != "" {
		parts = append(parts, stylePrefix)
	}

	parts = append(parts, string(p.ViewAngle))

	if p.BodyPosition != "" {
		parts = append(parts, string(p.BodyPosition))
	}

	parts = append(parts, p.Description)

	if len(p.MusclesShown) > 0 {
		parts = append(parts, "showing "+strings.Join(p.MusclesShown, ", "))
	}
	if len(p.JointsShown) > 0 {
		parts = append(parts, "highlighting "+strings.Join(p.JointsShown, ", "))
	}
	if len(p.Equipment) > 0 {
		parts = append(parts, "using "+strings.Join(p.Equipment, ", "))
	}

	if p.MovementIndicators {
		parts = append(parts, "with dotted lines indicating movement direction and range")
	}

	if styleSuffix != "" {
		parts = append(parts, styleSuffix)
	}

	return strings.Join(parts, ", ")
}
