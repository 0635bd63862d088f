package genimage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	cfg, err := Resolve(Options{})
	require.NoError(t, err)

	assert.Equal(t, DeviceCUDA, cfg.Device)
	assert.Equal(t, VariantFull, cfg.ModelVariant)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 1024, cfg.Height)
	assert.Equal(t, 30, cfg.Steps)
	assert.Equal(t, 7.5, cfg.GuidanceScale)
	assert.Equal(t, BaseSeed, cfg.BaseSeed)
	assert.False(t, cfg.UseRefiner)
}

func TestResolvePresets(t *testing.T) {
	tests := []struct {
		preset   string
		steps    int
		guidance float64
		refiner  bool
		size     int
	}{
		{"fast", 20, 7.0, false, 1024},
		{"quality", 40, 8.0, true, 1024},
		{"low_vram", 25, 7.5, false, 768},
		{"cpu", 15, 7.5, false, 512},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			cfg, err := Resolve(Options{Preset: tt.preset})
			require.NoError(t, err)
			assert.Equal(t, tt.steps, cfg.Steps)
			assert.Equal(t, tt.guidance, cfg.GuidanceScale)
			assert.Equal(t, tt.refiner, cfg.UseRefiner)
			assert.Equal(t, tt.size, cfg.Width)
		})
	}
}

func TestResolveUnknownPreset(t *testing.T) {
	_, err := Resolve(Options{Preset: "ultra"})
	require.Error(t, err)

	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "preset", cerr.Param)
	assert.Contains(t, cerr.Reason, "ultra")
}

// CPU wins over everything: the quality preset asks for the full model
// with refiner, but on CPU the lightweight variant at 512px is forced.
func TestResolveCPUForcesLightweight(t *testing.T) {
	cfg, err := Resolve(Options{Device: "cpu", Preset: "quality"})
	require.NoError(t, err)

	assert.Equal(t, DeviceCPU, cfg.Device)
	assert.Equal(t, VariantLightweight, cfg.ModelVariant)
	assert.Equal(t, TierReduced, cfg.Tier)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 512, cfg.Height)
	// Non-resolution preset values survive.
	assert.Equal(t, 40, cfg.Steps)
}

// low_vram reduces resolution but keeps the full model on a GPU.
func TestResolveLowVRAMOnCUDA(t *testing.T) {
	cfg, err := Resolve(Options{Device: "cuda", Preset: "low_vram"})
	require.NoError(t, err)

	assert.Equal(t, VariantFull, cfg.ModelVariant)
	assert.Equal(t, TierReduced, cfg.Tier)
	assert.Equal(t, 768, cfg.Width)
	assert.True(t, cfg.Enabled(OptAttentionSlicing))
	assert.True(t, cfg.Enabled(OptVAETiling))
}

func TestResolveExplicitOverridesBeatPreset(t *testing.T) {
	cfg, err := Resolve(Options{
		Preset:        "fast",
		Steps:         33,
		GuidanceScale: 9.5,
		Seed:          1234,
	})
	require.NoError(t, err)

	assert.Equal(t, 33, cfg.Steps)
	assert.Equal(t, 9.5, cfg.GuidanceScale)
	assert.Equal(t, int64(1234), cfg.BaseSeed)
}

func TestResolveLightweightAlwaysHalfSize(t *testing.T) {
	cfg, err := Resolve(Options{ModelVariant: "lightweight", Tier: "full"})
	require.NoError(t, err)

	assert.Equal(t, TierReduced, cfg.Tier)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, "runwayml/stable-diffusion-v1-5", cfg.ModelVariant.ModelID())
}

func TestResolveInvalidInputs(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		param string
	}{
		{"negative steps", Options{Steps: -5}, "steps"},
		{"negative guidance", Options{GuidanceScale: -1}, "guidance_scale"},
		{"unknown device", Options{Device: "tpu"}, "device"},
		{"unknown variant", Options{ModelVariant: "turbo"}, "model_variant"},
		{"unknown tier", Options{Tier: "tiny"}, "resolution"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.opts)
			var cerr *ConfigurationError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.param, cerr.Param)
		})
	}
}

func TestPresetNamesSorted(t *testing.T) {
	assert.Equal(t, []string{"cpu", "fast", "low_vram", "quality"}, PresetNames())
}
