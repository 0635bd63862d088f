package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	cli "github.com/urfave/cli/v3"

	"physiohub/physio-app/internal/genimage"
	"physiohub/physio-app/internal/logging"
)

func main() {
	cmd := &cli.Command{
		Name:                  "illustrate",
		EnableShellCompletion: true,
		Usage:                 "Generate exercise illustrations through the diffusion sidecar",
		Commands: []*cli.Command{
			NewListCommand(),
			NewGenerateCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewListCommand lists the exercises with prompt definitions.
func NewListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List exercises available for illustration",
		Action: func(ctx context.Context, command *cli.Command) error {
			for _, id := range genimage.ExerciseIDs() {
				fmt.Printf("%-28s %d prompt(s)\n", id, len(genimage.PromptsFor(id)))
			}
			return nil
		},
	}
}

// NewGenerateCommand renders illustrations for one exercise or the
// whole catalog.
func NewGenerateCommand() *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Generate illustrations for an exercise (or --all)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "exercise",
				Aliases: []string{"e"},
				Usage:   "Exercise ID to illustrate",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Illustrate every exercise in the catalog",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print the prompts without calling the generator",
			},
			&cli.StringFlag{
				Name:    "preset",
				Aliases: []string{"p"},
				Usage:   "Generation preset (fast, quality, low_vram, cpu)",
			},
			&cli.StringFlag{
				Name:    "device",
				Usage:   "Compute device (cuda, mps, cpu)",
				Sources: cli.EnvVars("GENERATION_DEVICE"),
			},
			&cli.StringFlag{
				Name:  "model-variant",
				Usage: "Model variant (full, lightweight)",
			},
			&cli.IntFlag{
				Name:  "steps",
				Usage: "Inference step count override",
			},
			&cli.FloatFlag{
				Name:  "guidance",
				Usage: "Guidance scale override",
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Base seed override",
			},
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"o"},
				Value:   "generated_images",
				Usage:   "Directory for rendered images",
			},
			&cli.StringFlag{
				Name:    "endpoint",
				Value:   "http://localhost:7860",
				Usage:   "Diffusion sidecar base URL",
				Sources: cli.EnvVars("GENERATION_ENDPOINT"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: runGenerate,
	}
}

func runGenerate(ctx context.Context, command *cli.Command) error {
	logging.Setup(command.String("log-level"))
	logger := logging.WithModule(slog.Default(), "illustrate")

	exerciseID := command.String("exercise")
	all := command.Bool("all")
	if exerciseID == "" && !all {
		return fmt.Errorf("either --exercise or --all is required")
	}
	if exerciseID != "" && all {
		return fmt.Errorf("--exercise and --all are mutually exclusive")
	}

	cfg, err := genimage.Resolve(genimage.Options{
		Device:        command.String("device"),
		Preset:        command.String("preset"),
		ModelVariant:  command.String("model-variant"),
		Steps:         int(command.Int("steps")),
		GuidanceScale: command.Float("guidance"),
		Seed:          int64(command.Int("seed")),
	})
	if err != nil {
		return err
	}

	logger.Info("resolved generation config",
		"device", cfg.Device,
		"model", cfg.ModelVariant.ModelID(),
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"steps", cfg.Steps,
		"guidance", cfg.GuidanceScale,
		"refiner", cfg.UseRefiner,
	)

	generator := genimage.NewHTTPGenerator(command.String("endpoint"))
	store := genimage.DirStore{Root: command.String("output-dir")}
	svc := genimage.NewService(generator, store, cfg, logger)

	if command.Bool("dry-run") {
		ids := genimage.ExerciseIDs()
		if exerciseID != "" {
			ids = []string{exerciseID}
		}
		for _, id := range ids {
			prompts, err := svc.BuildPrompts(id)
			if err != nil {
				return err
			}
			fmt.Printf("== %s ==\n", id)
			for i, text := range prompts {
				fmt.Printf("  [%d] %s\n", i+1, text)
			}
		}
		return nil
	}

	defer func() {
		if err := svc.Unload(context.Background()); err != nil {
			logger.Warn("failed to unload model", "error", err)
		}
	}()

	if exerciseID != "" {
		images, err := svc.GenerateExercise(ctx, exerciseID)
		if err != nil {
			return err
		}
		for _, img := range images {
			fmt.Printf("saved %s\n", img.URL)
		}
		return nil
	}

	summary := svc.GenerateAll(ctx)
	printSummary(summary)
	if len(summary.Failed) > 0 {
		return fmt.Errorf("%d exercise(s) failed", len(summary.Failed))
	}
	return nil
}

func printSummary(summary *genimage.BatchSummary) {
	fmt.Printf("generated %d image(s) across %d exercise(s)\n",
		summary.Total(), len(summary.Generated))

	if len(summary.Failed) == 0 {
		return
	}
	failed := make([]string, 0, len(summary.Failed))
	for id := range summary.Failed {
		failed = append(failed, id)
	}
	sort.Strings(failed)
	fmt.Println("failed:")
	for _, id := range failed {
		fmt.Printf("  %s: %v\n", id, summary.Failed[id])
	}
}
