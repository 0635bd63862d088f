package genimage

import (
	"fmt"
	"sort"
)

// Device is the compute backend requested for generation.
type Device string

const (
	DeviceCPU  Device = "cpu"
	DeviceCUDA Device = "cuda"
	DeviceMPS  Device = "mps" // Apple Silicon unified memory
)

func (d Device) Valid() bool {
	switch d {
	case DeviceCPU, DeviceCUDA, DeviceMPS:
		return true
	}
	return false
}

// ModelVariant selects between the full-size model and the lightweight
// CPU fallback.
type ModelVariant string

const (
	VariantFull        ModelVariant = "full"
	VariantLightweight ModelVariant = "lightweight"
)

// ModelID maps the variant to the diffusion model identifier the
// runtime loads.
func (v ModelVariant) ModelID() string {
	if v == VariantLightweight {
		return "runwayml/stable-diffusion-v1-5"
	}
	return "stabilityai/stable-diffusion-xl-base-1.0"
}

func (v ModelVariant) Valid() bool {
	return v == VariantFull || v == VariantLightweight
}

// ResolutionTier is the abstract resolution level; the pixel size it
// maps to depends on the model variant.
type ResolutionTier string

const (
	TierFull    ResolutionTier = "full"
	TierReduced ResolutionTier = "reduced"
)

func (t ResolutionTier) Valid() bool {
	return t == TierFull || t == TierReduced
}

// MemoryOptimization flags passed through to the runtime.
type MemoryOptimization string

const (
	OptAttentionSlicing MemoryOptimization = "attention_slicing"
	OptVAETiling        MemoryOptimization = "vae_tiling"
)

// Pixel sizes per (variant, tier). The lightweight model always renders
// at half the full model's default, regardless of tier.
const (
	fullSize        = 1024
	reducedSize     = 768
	lightweightSize = 512
)

// Generation defaults outside any preset.
const (
	defaultSteps    = 30
	defaultGuidance = 7.5

	// BaseSeed keeps output reproducible; the per-image seed is
	// BaseSeed plus the image order.
	BaseSeed int64 = 42
)

// Config is one fully resolved, internally consistent generation
// configuration. Produce it with Resolve; do not assemble by hand.
type Config struct {
	Device        Device
	ModelVariant  ModelVariant
	Tier          ResolutionTier
	Width         int
	Height        int
	Steps         int
	GuidanceScale float64
	UseRefiner    bool
	MemoryOpts    map[MemoryOptimization]bool
	BaseSeed      int64

	StylePrefix    string
	StyleSuffix    string
	NegativePrompt string
}

// Enabled reports whether a memory optimization flag is on.
func (c *Config) Enabled(opt MemoryOptimization) bool {
	return c.MemoryOpts[opt]
}

// preset is a named bundle of base parameters. Zero values mean "keep
// the default".
type preset struct {
	steps    int
	guidance float64
	tier     ResolutionTier
	device   Device
	refiner  bool
	opts     []MemoryOptimization
}

var presets = map[string]preset{
	"fast": {
		steps:    20,
		guidance: 7.0,
	},
	"quality": {
		steps:    40,
		guidance: 8.0,
		refiner:  true,
	},
	"low_vram": {
		steps: 25,
		tier:  TierReduced,
		opts:  []MemoryOptimization{OptAttentionSlicing, OptVAETiling},
	},
	"cpu": {
		steps:  15,
		device: DeviceCPU,
	},
}

// PresetNames lists the known presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options are the caller-facing inputs to Resolve. Zero values mean
// "unset": Steps 0 keeps the preset/default step count, empty strings
// keep the preset/default choice.
type Options struct {
	Device        string
	Preset        string
	ModelVariant  string
	Tier          string
	Steps         int
	GuidanceScale float64
	Seed          int64
}

// Resolve produces one fully specified configuration from a device,
// an optional preset, and optional explicit overrides. Precedence,
// highest first:
//
//  1. CPU forces the lightweight model and halved resolution; nothing
//     supersedes this.
//  2. Preset base values.
//  3. Explicit per-field overrides (every field except model variant
//     and resolution on CPU).
//
// The result is normalized so resolution always matches the variant.
func Resolve(opts Options) (*Config, error) {
	cfg := &Config{
		ModelVariant:  VariantFull,
		Tier:          TierFull,
		Steps:         defaultSteps,
		GuidanceScale: defaultGuidance,
		MemoryOpts: map[MemoryOptimization]bool{
			OptAttentionSlicing: true,
			OptVAETiling:        true,
		},
		BaseSeed:       BaseSeed,
		StylePrefix:    StylePrefix,
		StyleSuffix:    StyleSuffix,
		NegativePrompt: NegativePrompt,
	}

	if opts.Device != "" {
		device := Device(opts.Device)
		if !device.Valid() {
			return nil, &ConfigurationError{Param: "device", Reason: fmt.Sprintf("unknown device %q", opts.Device)}
		}
		cfg.Device = device
	}

	if opts.Preset != "" {
		p, ok := presets[opts.Preset]
		if !ok {
			return nil, &ConfigurationError{
				Param:  "preset",
				Reason: fmt.Sprintf("unknown preset %q (known: %v)", opts.Preset, PresetNames()),
			}
		}
		if p.steps != 0 {
			cfg.Steps = p.steps
		}
		if p.guidance != 0 {
			cfg.GuidanceScale = p.guidance
		}
		if p.tier != "" {
			cfg.Tier = p.tier
		}
		if p.device != "" && cfg.Device == "" {
			cfg.Device = p.device
		}
		cfg.UseRefiner = p.refiner
		for _, opt := range p.opts {
			cfg.MemoryOpts[opt] = true
		}
	}

	// Explicit overrides beat preset values.
	if opts.Steps != 0 {
		if opts.Steps < 0 {
			return nil, &ConfigurationError{Param: "steps", Reason: "must be positive"}
		}
		cfg.Steps = opts.Steps
	}
	if opts.GuidanceScale != 0 {
		if opts.GuidanceScale < 0 {
			return nil, &ConfigurationError{Param: "guidance_scale", Reason: "must be positive"}
		}
		cfg.GuidanceScale = opts.GuidanceScale
	}
	if opts.ModelVariant != "" {
		variant := ModelVariant(opts.ModelVariant)
		if !variant.Valid() {
			return nil, &ConfigurationError{Param: "model_variant", Reason: fmt.Sprintf("unknown variant %q", opts.ModelVariant)}
		}
		cfg.ModelVariant = variant
	}
	if opts.Tier != "" {
		tier := ResolutionTier(opts.Tier)
		if !tier.Valid() {
			return nil, &ConfigurationError{Param: "resolution", Reason: fmt.Sprintf("unknown tier %q", opts.Tier)}
		}
		cfg.Tier = tier
	}
	if opts.Seed != 0 {
		cfg.BaseSeed = opts.Seed
	}

	if cfg.Device == "" {
		cfg.Device = DeviceCUDA
	}

	// Hard override: the full model is impractical on CPU, so CPU
	// always gets the lightweight variant at the reduced tier, no
	// matter what a preset or explicit override asked for.
	if cfg.Device == DeviceCPU {
		cfg.ModelVariant = VariantLightweight
		cfg.Tier = TierReduced
	}

	// Normalize: the lightweight model only exists at the reduced tier.
	if cfg.ModelVariant == VariantLightweight {
		cfg.Tier = TierReduced
	}

	cfg.Width, cfg.Height = pixelSize(cfg.ModelVariant, cfg.Tier)

	return cfg, nil
}

func pixelSize(variant ModelVariant, tier ResolutionTier) (int, int) {
	if variant == VariantLightweight {
		return lightweightSize, lightweightSize
	}
	if tier == TierReduced {
		return reducedSize, reducedSize
	}
	return fullSize, fullSize
}
