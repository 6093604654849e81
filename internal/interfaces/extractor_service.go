package interfaces

import "context"

// DocumentExtractor converts a source document into markdown text.
// Extraction failure is fatal to the whole pipeline; there is no partial
// document processing.
type DocumentExtractor interface {
	// ExtractMarkdown converts the document at path into UTF-8 markdown.
	ExtractMarkdown(ctx context.Context, path string) (string, error)

	// PageEstimate returns the page count for the document. PDF input uses
	// the real page count; other formats estimate from the markdown length.
	PageEstimate(path string, markdown string) int
}
