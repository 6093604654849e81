package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ternarybob/scribeflow/internal/app"
)

func runBrokerCommand(args []string) {
	fs := flag.NewFlagSet("broker", flag.ExitOnError)
	var configFiles configPaths
	fs.Var(&configFiles, "config", "Configuration file path (repeatable, later files override earlier)")
	markdownPath := fs.String("markdown", "", "Source markdown file (required)")
	manifestPath := fs.String("manifest", "", "Visual manifest JSON/YAML file (required)")
	stylePath := fs.String("style", "", "Style guide JSON/YAML file (required)")
	endpoint := fs.String("endpoint", "", "Rendering endpoint URL (overrides config)")
	lessonID := fs.String("lesson-id", "lesson-1", "Lesson identifier used in visualization IDs")
	dryRun := fs.Bool("dry-run", false, "Synthesize handshakes without network access")
	reviewHTML := fs.String("review-html", "generated_artifacts/review.html", "Review HTML output path")
	compiledOut := fs.String("compiled-out", "generated_artifacts/compiled_payloads.json", "Compiled payloads output path")
	fs.Parse(args)

	if *markdownPath == "" || *manifestPath == "" || *stylePath == "" {
		fmt.Fprintln(os.Stderr, "broker requires -markdown, -manifest, and -style")
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

	result, err := application.RunBroker(context.Background(), app.RunOptions{
		MarkdownPath:    *markdownPath,
		ManifestPath:    *manifestPath,
		StylePath:       *stylePath,
		Endpoint:        *endpoint,
		LessonID:        *lessonID,
		DryRun:          *dryRun,
		ReviewHTMLPath:  *reviewHTML,
		CompiledOutPath: *compiledOut,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Broker run failed")
		os.Exit(1)
	}

	fmt.Printf("Broker done in %.3fs\n", result.ElapsedSeconds)
	fmt.Printf("Handshake success: %d/%d\n", result.SuccessCount, len(result.Handshakes))
	for i, h := range result.Handshakes {
		if i >= 3 {
			break
		}
		if line, err := json.Marshal(h); err == nil {
			fmt.Println(string(line))
		}
	}
	fmt.Printf("review.html: %s\n", *reviewHTML)
	fmt.Printf("compiled payloads: %s\n", *compiledOut)
}
