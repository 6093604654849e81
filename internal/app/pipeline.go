package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ternarybob/scribeflow/internal/common"
	"github.com/ternarybob/scribeflow/internal/models"
)

// RunOptions parameterizes one broker run.
type RunOptions struct {
	MarkdownPath string
	ManifestPath string
	StylePath    string
	Endpoint     string
	LessonID     string
	DryRun       bool

	// Output artifact paths. Empty paths skip the artifact.
	ReviewHTMLPath  string
	CompiledOutPath string
}

// RunResult reports one completed broker run.
type RunResult struct {
	RunID          string
	Compiled       []models.CompiledVisualization
	Handshakes     []models.HandshakeResult
	SuccessCount   int
	ElapsedSeconds float64
}

// RunBroker compiles the manifest, posts each payload sequentially (or
// synthesizes handshakes on dry runs), writes the review and compiled-payload
// artifacts, and archives the run when the archive is enabled. Delivery
// failures are reported per item, never as a run error.
func (a *App) RunBroker(ctx context.Context, opts RunOptions) (*RunResult, error) {
	start := time.Now()

	markdown, err := os.ReadFile(opts.MarkdownPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read markdown: %w", err)
	}
	manifest, err := models.LoadManifest(opts.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	style, err := models.LoadStyleGuide(opts.StylePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load style guide: %w", err)
	}

	lessonID := opts.LessonID
	if lessonID == "" {
		lessonID = "lesson-1"
	}
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = a.Config.Delivery.Endpoint
	}

	a.Logger.Info().
		Str("lesson_id", lessonID).
		Int("manifest_entries", len(manifest)).
		Bool("dry_run", opts.DryRun).
		Msg("Starting broker run")

	course := a.Compiler.CompileCourse(manifest, style, lessonID)
	compiled := course.Visualizations

	var handshakes []models.HandshakeResult
	if opts.DryRun {
		handshakes = a.Delivery.DryRun(compiled)
	} else {
		handshakes = a.Delivery.Deliver(ctx, compiled, endpoint)
	}

	if opts.ReviewHTMLPath != "" {
		if err := a.Review.WriteReview(opts.ReviewHTMLPath, string(markdown), compiled, handshakes); err != nil {
			return nil, fmt.Errorf("failed to write review artifact: %w", err)
		}
	}
	if opts.CompiledOutPath != "" {
		if err := writeJSONArtifact(opts.CompiledOutPath, course); err != nil {
			return nil, fmt.Errorf("failed to write compiled payloads: %w", err)
		}
	}

	successCount := 0
	for _, h := range handshakes {
		if h.OK {
			successCount++
		}
	}

	result := &RunResult{
		RunID:          common.NewRunID(),
		Compiled:       compiled,
		Handshakes:     handshakes,
		SuccessCount:   successCount,
		ElapsedSeconds: time.Since(start).Seconds(),
	}

	if a.RunStore != nil {
		if err := a.archiveRun(ctx, opts, lessonID, endpoint, result); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to archive run")
		}
	}

	a.Logger.Info().
		Str("run_id", result.RunID).
		Int("success_count", successCount).
		Int("total_count", len(handshakes)).
		Float64("elapsed_seconds", result.ElapsedSeconds).
		Msg("Broker run completed")

	return result, nil
}

func (a *App) archiveRun(ctx context.Context, opts RunOptions, lessonID, endpoint string, result *RunResult) error {
	compiledJSON, err := json.Marshal(result.Compiled)
	if err != nil {
		return fmt.Errorf("failed to serialize compiled payloads: %w", err)
	}
	handshakesJSON, err := json.Marshal(result.Handshakes)
	if err != nil {
		return fmt.Errorf("failed to serialize handshakes: %w", err)
	}

	return a.RunStore.SaveRun(ctx, &models.RunRecord{
		RunID:          result.RunID,
		LessonID:       lessonID,
		CreatedAt:      time.Now().UTC(),
		Endpoint:       endpoint,
		DryRun:         opts.DryRun,
		CompiledJSON:   compiledJSON,
		HandshakesJSON: handshakesJSON,
		SuccessCount:   result.SuccessCount,
		TotalCount:     len(result.Handshakes),
		ElapsedSeconds: result.ElapsedSeconds,
	})
}

// AnalyzeOptions parameterizes document analysis.
type AnalyzeOptions struct {
	DocumentPath string
	ManifestOut  string
	StyleOut     string
}

// AnalyzeResult reports one completed analysis.
type AnalyzeResult struct {
	Markdown     string
	PageEstimate int
	Analysis     *models.AnalysisResult
}

// RunAnalyze extracts the document to markdown, estimates its length, and
// produces the visual manifest and style guide artifacts.
func (a *App) RunAnalyze(ctx context.Context, opts AnalyzeOptions) (*AnalyzeResult, error) {
	markdown, err := a.Extractor.ExtractMarkdown(ctx, opts.DocumentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to extract document: %w", err)
	}

	pageEstimate := a.Extractor.PageEstimate(opts.DocumentPath, markdown)

	analysis, err := a.Analyzer.Analyze(ctx, markdown, pageEstimate)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	if opts.ManifestOut != "" {
		if err := writeJSONArtifact(opts.ManifestOut, analysis.VisualManifest); err != nil {
			return nil, fmt.Errorf("failed to write manifest: %w", err)
		}
	}
	if opts.StyleOut != "" {
		if err := writeJSONArtifact(opts.StyleOut, analysis.StyleGuide); err != nil {
			return nil, fmt.Errorf("failed to write style guide: %w", err)
		}
	}

	a.Logger.Info().
		Int("page_estimate", pageEstimate).
		Int("manifest_entries", len(analysis.VisualManifest)).
		Msg("Analysis completed")

	return &AnalyzeResult{
		Markdown:     markdown,
		PageEstimate: pageEstimate,
		Analysis:     analysis,
	}, nil
}

// DraftOptions parameterizes draft expansion.
type DraftOptions struct {
	MarkdownPath string
	ManifestPath string
	StylePath    string
	DraftOut     string
	PDFOut       string
	Title        string
}

// RunDraft expands the markdown into a placeholder-annotated draft and
// optionally exports it to PDF.
func (a *App) RunDraft(ctx context.Context, opts DraftOptions) (string, error) {
	markdown, err := os.ReadFile(opts.MarkdownPath)
	if err != nil {
		return "", fmt.Errorf("failed to read markdown: %w", err)
	}
	manifest, err := models.LoadManifest(opts.ManifestPath)
	if err != nil {
		return "", fmt.Errorf("failed to load manifest: %w", err)
	}
	style, err := models.LoadStyleGuide(opts.StylePath)
	if err != nil {
		return "", fmt.Errorf("failed to load style guide: %w", err)
	}

	expanded, err := a.Draft.Expand(ctx, string(markdown), manifest, style)
	if err != nil {
		return "", fmt.Errorf("draft expansion failed: %w", err)
	}

	if opts.DraftOut != "" {
		if err := writeArtifact(opts.DraftOut, []byte(expanded)); err != nil {
			return "", fmt.Errorf("failed to write draft: %w", err)
		}
	}
	if opts.PDFOut != "" {
		title := opts.Title
		if title == "" {
			title = "Draft"
		}
		pdf, err := a.Export.ConvertMarkdownToPDF(expanded, title)
		if err != nil {
			return "", fmt.Errorf("failed to export draft PDF: %w", err)
		}
		if err := writeArtifact(opts.PDFOut, pdf); err != nil {
			return "", fmt.Errorf("failed to write draft PDF: %w", err)
		}
	}

	return expanded, nil
}

func writeJSONArtifact(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeArtifact(path, data)
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
