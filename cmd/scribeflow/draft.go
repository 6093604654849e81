package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ternarybob/scribeflow/internal/app"
)

func runDraftCommand(args []string) {
	fs := flag.NewFlagSet("draft", flag.ExitOnError)
	var configFiles configPaths
	fs.Var(&configFiles, "config", "Configuration file path (repeatable, later files override earlier)")
	markdownPath := fs.String("markdown", "", "Source markdown file (required)")
	manifestPath := fs.String("manifest", "", "Visual manifest JSON/YAML file (required)")
	stylePath := fs.String("style", "", "Style guide JSON/YAML file (required)")
	output := fs.String("output", "generated_artifacts/draft.md", "Expanded draft output path")
	pdfOut := fs.String("pdf", "", "Optional PDF export path")
	title := fs.String("title", "", "PDF document title (defaults to \"Draft\")")
	fs.Parse(args)

	if *markdownPath == "" || *manifestPath == "" || *stylePath == "" {
		fmt.Fprintln(os.Stderr, "draft requires -markdown, -manifest, and -style")
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

	expanded, err := application.RunDraft(context.Background(), app.DraftOptions{
		MarkdownPath: *markdownPath,
		ManifestPath: *manifestPath,
		StylePath:    *stylePath,
		DraftOut:     *output,
		PDFOut:       *pdfOut,
		Title:        *title,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Draft expansion failed")
		os.Exit(1)
	}

	fmt.Printf("Draft length: %d characters\n", len(expanded))
	fmt.Printf("draft: %s\n", *output)
	if *pdfOut != "" {
		fmt.Printf("draft pdf: %s\n", *pdfOut)
	}
}
