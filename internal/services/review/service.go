package review

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribeflow/internal/interfaces"
	"github.com/ternarybob/scribeflow/internal/models"
)

// mediaURLKeys are the response field names a delivered media URL may appear
// under, checked in order. Varying shapes are tolerated, not treated as
// errors.
var mediaURLKeys = []string{"url", "imageUrl", "posterUrl", "mediaUrl"}

const anchorPreviewLimit = 180

// Card is one visualization rendered alongside its paragraph.
type Card struct {
	VisualizationID string
	Type            models.TemplateType
	AnchorPreview   string
	MediaURL        string // empty means placeholder
}

// Row pairs one source paragraph with its associated visualization cards.
type Row struct {
	Paragraph string
	Cards     []Card
}

// Service reconstructs paragraph structure from the source markdown,
// re-associates compiled visualizations to the paragraph containing their
// anchor sentence, and emits the side-by-side HTML review document.
type Service struct {
	logger arbor.ILogger
	tmpl   *template.Template
}

// Compile-time assertion
var _ interfaces.ReviewService = (*Service)(nil)

// NewService creates a new review renderer
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
		tmpl:   template.Must(template.New("review").Parse(reviewTemplate)),
	}
}

// Render returns the review document as an HTML string. Every compiled
// visualization appears in exactly one row's card list and every paragraph
// appears in exactly one row, in original order.
func (s *Service) Render(markdown string, compiled []models.CompiledVisualization, handshakes []models.HandshakeResult) (string, error) {
	urls := resolveMediaURLs(handshakes)
	paragraphs := splitParagraphs(markdown)
	rows := buildRows(paragraphs, compiled, urls)

	var builder strings.Builder
	if err := s.tmpl.Execute(&builder, struct{ Rows []Row }{Rows: rows}); err != nil {
		return "", fmt.Errorf("failed to render review template: %w", err)
	}

	s.logger.Debug().
		Int("paragraphs", len(paragraphs)).
		Int("visualizations", len(compiled)).
		Int("resolved_urls", len(urls)).
		Msg("Rendered review document")

	return builder.String(), nil
}

// WriteReview renders and writes the document to path, creating parent
// directories as needed.
func (s *Service) WriteReview(path string, markdown string, compiled []models.CompiledVisualization, handshakes []models.HandshakeResult) error {
	html, err := s.Render(markdown, compiled, handshakes)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create review output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write review file: %w", err)
	}

	s.logger.Info().Str("path", path).Msg("Review document written")
	return nil
}

// resolveMediaURLs builds the visualizationId -> delivered URL lookup from
// successful handshakes only. The first non-empty known URL field wins.
func resolveMediaURLs(handshakes []models.HandshakeResult) map[string]string {
	urls := make(map[string]string)
	for _, handshake := range handshakes {
		if !handshake.OK {
			continue
		}
		for _, key := range mediaURLKeys {
			if v, ok := handshake.Response[key].(string); ok && v != "" {
				urls[handshake.VisualizationID] = v
				break
			}
		}
	}
	return urls
}

var paragraphBoundary = regexp.MustCompile(`\n\s*\n`)

// splitParagraphs splits markdown into paragraphs on blank-line boundaries,
// discarding empty paragraphs and preserving order.
func splitParagraphs(markdown string) []string {
	normalized := strings.ReplaceAll(markdown, "\r\n", "\n")
	parts := paragraphBoundary.Split(normalized, -1)

	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}

// buildRows associates each visualization with the first paragraph containing
// its anchor sentence as a substring. An empty or unmatched anchor falls back
// to the last paragraph so every visualization is shown somewhere; with zero
// paragraphs everything lands on a single synthetic row.
func buildRows(paragraphs []string, compiled []models.CompiledVisualization, urls map[string]string) []Row {
	synthetic := len(paragraphs) == 0

	rowCount := len(paragraphs)
	if synthetic {
		rowCount = 1
	}

	cardsByRow := make([][]Card, rowCount)
	for _, viz := range compiled {
		index := 0
		if !synthetic {
			index = len(paragraphs) - 1
			if viz.AnchorSentence != "" {
				for i, paragraph := range paragraphs {
					if strings.Contains(paragraph, viz.AnchorSentence) {
						index = i
						break
					}
				}
			}
		}
		cardsByRow[index] = append(cardsByRow[index], Card{
			VisualizationID: viz.VisualizationID,
			Type:            viz.Type,
			AnchorPreview:   truncateRunes(viz.AnchorSentence, anchorPreviewLimit),
			MediaURL:        urls[viz.VisualizationID],
		})
	}

	if synthetic && len(compiled) == 0 {
		return []Row{}
	}

	rows := make([]Row, 0, rowCount)
	for i := 0; i < rowCount; i++ {
		paragraph := ""
		if !synthetic {
			paragraph = paragraphs[i]
		}
		rows = append(rows, Row{Paragraph: paragraph, Cards: cardsByRow[i]})
	}
	return rows
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// reviewTemplate pairs the full paragraph text (left) with the generated
// visuals or placeholders (right). All dynamic content is escaped by
// html/template's contextual auto-escaping.
const reviewTemplate = `<!doctype html>
<html>
<head>
<meta charset="utf-8"/>
<title>ScribeFlow Review</title>
<style>
body{font-family:Segoe UI,Arial,sans-serif;margin:16px}
.row{display:grid;grid-template-columns:1.2fr 1fr;gap:14px;border-bottom:1px solid #ddd;padding:10px 0}
.left{white-space:pre-wrap;margin:0;background:#f8fafc;padding:10px;border-radius:8px}
.card{border:1px solid #ccd;padding:8px;border-radius:8px;margin-bottom:8px;background:#fff}
img{width:100%;border-radius:6px;margin-top:6px}
.ph{height:140px;display:flex;align-items:center;justify-content:center;background:#eef2f7;border-radius:6px;margin-top:6px}
.small{font-size:12px}
.muted{color:#6b7280}
</style>
</head>
<body>
<h2>Companion HTML Review</h2>
<p>Left: full markdown paragraphs. Right: generated visuals and placeholders aligned to anchor sentences.</p>
{{range .Rows}}<div class="row"><pre class="left">{{.Paragraph}}</pre><div class="right">{{if .Cards}}{{range .Cards}}<div class="card"><div><b>{{.VisualizationID}}</b> &middot; {{.Type}}</div><div class="small">{{.AnchorPreview}}</div>{{if .MediaURL}}<img src="{{.MediaURL}}" alt="{{.VisualizationID}}"/>{{else}}<div class="ph">PNG Placeholder</div>{{end}}</div>{{end}}{{else}}<div class="small muted">No visual mapped</div>{{end}}</div></div>
{{end}}</body>
</html>
`
