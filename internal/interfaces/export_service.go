package interfaces

// ExportService renders markdown artifacts into PDF documents.
type ExportService interface {
	// ConvertMarkdownToPDF converts markdown content to a PDF byte slice.
	// The title is used for document metadata only.
	ConvertMarkdownToPDF(markdown, title string) ([]byte, error)
}
