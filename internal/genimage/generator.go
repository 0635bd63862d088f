package genimage

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Generator is the external diffusion runtime behind an interface. The
// production implementation talks to an inference server over HTTP;
// tests substitute a fake. Every failure it returns surfaces as an
// *ExternalServiceError and is passed through unmodified.
type Generator interface {
	Load(ctx context.Context, cfg *Config) error
	Generate(ctx context.Context, prompt string, seed int64) ([]byte, error)
	Unload(ctx context.Context) error
}

const defaultRequestTimeout = 5 * time.Minute

// HTTPGenerator drives a Stable Diffusion inference server. Load pushes
// the model/options selection; Generate runs txt2img and returns the
// PNG bytes of the first image.
type HTTPGenerator struct {
	endpoint   string
	httpClient *http.Client
	cfg        *Config
	loaded     bool
}

func NewHTTPGenerator(endpoint string) *HTTPGenerator {
	return &HTTPGenerator{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: defaultRequestTimeout,
		},
	}
}

type loadRequest struct {
	Model             string `json:"model"`
	RefinerModel      string `json:"refiner_model,omitempty"`
	Device            string `json:"device"`
	EnableAttnSlicing bool   `json:"enable_attention_slicing"`
	EnableVAETiling   bool   `json:"enable_vae_tiling"`
}

type txt2imgRequest struct {
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt,omitempty"`
	Steps          int     `json:"steps"`
	GuidanceScale  float64 `json:"cfg_scale"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Seed           int64   `json:"seed"`
}

type txt2imgResponse struct {
	Images []string `json:"images"` // base64-encoded PNG
	Error  *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Load selects the model on the inference server. Idempotent: once
// loaded, further calls are no-ops until Unload.
func (g *HTTPGenerator) Load(ctx context.Context, cfg *Config) error {
	if g.loaded {
		return nil
	}

	req := loadRequest{
		Model:             cfg.ModelVariant.ModelID(),
		Device:            string(cfg.Device),
		EnableAttnSlicing: cfg.Enabled(OptAttentionSlicing),
		EnableVAETiling:   cfg.Enabled(OptVAETiling),
	}
	if cfg.UseRefiner {
		req.RefinerModel = "stabilityai/stable-diffusion-xl-refiner-1.0"
	}

	if err := g.post(ctx, "/v1/load", req, nil); err != nil {
		return &ExternalServiceError{Op: "load model", Err: err}
	}

	g.cfg = cfg
	g.loaded = true
	return nil
}

// Generate runs a single txt2img request and returns the raw image
// bytes.
func (g *HTTPGenerator) Generate(ctx context.Context, prompt string, seed int64) ([]byte, error) {
	if !g.loaded {
		return nil, &ExternalServiceError{Op: "generate", Err: fmt.Errorf("model not loaded")}
	}

	req := txt2imgRequest{
		Prompt:         prompt,
		NegativePrompt: g.cfg.NegativePrompt,
		Steps:          g.cfg.Steps,
		GuidanceScale:  g.cfg.GuidanceScale,
		Width:          g.cfg.Width,
		Height:         g.cfg.Height,
		Seed:           seed,
	}

	var resp txt2imgResponse
	if err := g.post(ctx, "/v1/txt2img", req, &resp); err != nil {
		return nil, &ExternalServiceError{Op: "generate", Err: err}
	}
	if resp.Error != nil {
		return nil, &ExternalServiceError{Op: "generate", Err: fmt.Errorf("%s", resp.Error.Message)}
	}
	if len(resp.Images) == 0 {
		return nil, &ExternalServiceError{Op: "generate", Err: fmt.Errorf("empty response from inference server")}
	}

	data, err := base64.StdEncoding.DecodeString(resp.Images[0])
	if err != nil {
		return nil, &ExternalServiceError{Op: "generate", Err: fmt.Errorf("decode image: %w", err)}
	}
	return data, nil
}

// Unload releases the model on the inference server to free memory.
func (g *HTTPGenerator) Unload(ctx context.Context) error {
	if !g.loaded {
		return nil
	}
	if err := g.post(ctx, "/v1/unload", struct{}{}, nil); err != nil {
		return &ExternalServiceError{Op: "unload model", Err: err}
	}
	g.loaded = false
	g.cfg = nil
	return nil
}

func (g *HTTPGenerator) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inference server returned %d: %s", resp.StatusCode, string(raw))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
