package extract

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribeflow/internal/interfaces"
)

// wordsPerPage converts a word count into a rough page estimate for
// non-PDF inputs.
const wordsPerPage = 450

// Service converts source documents (PDF, HTML, markdown) into markdown
// text for analysis.
type Service struct {
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.DocumentExtractor = (*Service)(nil)

// NewService creates a new document extraction service
func NewService(logger arbor.ILogger) *Service {
	return &Service{logger: logger}
}

// ExtractMarkdown converts the document at path into markdown based on its
// file extension. Markdown and plain-text files pass through unchanged.
func (s *Service) ExtractMarkdown(ctx context.Context, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return s.extractPDF(ctx, path)
	case ".html", ".htm":
		return s.extractHTML(path)
	case ".md", ".markdown", ".txt", "":
		content, err := readFileUTF8(path)
		if err != nil {
			return "", fmt.Errorf("failed to read document: %w", err)
		}
		return content, nil
	default:
		return "", fmt.Errorf("unsupported document format %q (supported: .pdf, .html, .md, .txt)", filepath.Ext(path))
	}
}

// extractPDF extracts text content page by page.
func (s *Service) extractPDF(ctx context.Context, path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if pageCount == 0 {
		return "", fmt.Errorf("PDF has no pages: %s", path)
	}

	var builder strings.Builder
	for pageNum := 0; pageNum < pageCount; pageNum++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		text, err := doc.Text(pageNum)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Int("page", pageNum+1).
				Msg("Failed to extract PDF page text, skipping page")
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString(strings.TrimSpace(text))
	}

	markdown := builder.String()
	if markdown == "" {
		return "", fmt.Errorf("no extractable text in PDF: %s", path)
	}

	s.logger.Debug().
		Int("pages", pageCount).
		Int("markdown_length", len(markdown)).
		Msg("PDF extraction completed")

	return markdown, nil
}

// extractHTML prunes non-content elements and converts the remainder to
// markdown. Conversion failure degrades to tag stripping rather than
// failing the run.
func (s *Service) extractHTML(path string) (string, error) {
	html, err := readFileUTF8(path)
	if err != nil {
		return "", fmt.Errorf("failed to read HTML document: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		doc.Find("script, style, nav, footer, aside, noscript").Remove()
		if body, err := doc.Find("body").Html(); err == nil && strings.TrimSpace(body) != "" {
			html = body
		}
	}

	converter := md.NewConverter("", true, nil)
	converted, err := converter.ConvertString(html)
	if err != nil {
		s.logger.Warn().Err(err).Msg("HTML to markdown conversion failed, using fallback")
		return stripHTMLTags(html), nil
	}

	trimmed := strings.TrimSpace(converted)
	if trimmed == "" {
		return stripHTMLTags(html), nil
	}
	return trimmed, nil
}

// PageEstimate returns the real page count for PDFs and a word-count
// estimate for everything else. Always at least 1.
func (s *Service) PageEstimate(path string, markdown string) int {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		if pdfCtx, err := api.ReadContextFile(path); err == nil && pdfCtx.PageCount > 0 {
			return pdfCtx.PageCount
		}
		s.logger.Warn().Str("path", path).Msg("Failed to read PDF page count, estimating from text")
	}

	words := len(strings.Fields(markdown))
	pages := int(math.Round(float64(words) / wordsPerPage))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// readFileUTF8 reads a file and strips any leading UTF-8 BOM.
func readFileUTF8(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(string(data), "\uFEFF"), nil
}

// stripHTMLTags removes HTML tags for fallback cases
func stripHTMLTags(htmlStr string) string {
	re := regexp.MustCompile(`<[^>]*>`)
	stripped := re.ReplaceAllString(htmlStr, "")

	spaceRe := regexp.MustCompile(`\s+`)
	cleaned := spaceRe.ReplaceAllString(stripped, " ")

	cleaned = strings.ReplaceAll(cleaned, "&amp;", "&")
	cleaned = strings.ReplaceAll(cleaned, "&lt;", "<")
	cleaned = strings.ReplaceAll(cleaned, "&gt;", ">")
	cleaned = strings.ReplaceAll(cleaned, "&quot;", "\"")
	cleaned = strings.ReplaceAll(cleaned, "&#39;", "'")
	cleaned = strings.ReplaceAll(cleaned, "&nbsp;", " ")

	return strings.TrimSpace(cleaned)
}
