package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ternarybob/scribeflow/internal/app"
)

func runAnalyzeCommand(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	var configFiles configPaths
	fs.Var(&configFiles, "config", "Configuration file path (repeatable, later files override earlier)")
	input := fs.String("input", "", "Source document: .pdf, .html, .md, or .txt (required)")
	manifestOut := fs.String("manifest-out", "generated_artifacts/visual_manifest.json", "Visual manifest output path")
	styleOut := fs.String("style-out", "generated_artifacts/style_guide.json", "Style guide output path")
	fs.Parse(args)

	if *input == "" {
		fmt.Fprintln(os.Stderr, "analyze requires -input")
		fs.Usage()
		os.Exit(1)
	}

	config, logger := loadConfig(configFiles)

	application, err := app.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}
	defer application.Close()

	result, err := application.RunAnalyze(context.Background(), app.AnalyzeOptions{
		DocumentPath: *input,
		ManifestOut:  *manifestOut,
		StyleOut:     *styleOut,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Analysis failed")
		os.Exit(1)
	}

	fmt.Printf("Estimated pages: %d\n", result.PageEstimate)
	fmt.Printf("Manifest entries: %d\n", len(result.Analysis.VisualManifest))
	fmt.Printf("Style mood: %s\n", result.Analysis.StyleGuide.Mood)
	fmt.Printf("visual manifest: %s\n", *manifestOut)
	fmt.Printf("style guide: %s\n", *styleOut)
}
