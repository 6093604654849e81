package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func newTestService() *Service {
	return NewService(arbor.NewLogger())
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtractMarkdown_MarkdownPassthrough(t *testing.T) {
	content := "# Lesson One\n\nSome body text."
	path := writeTempFile(t, "lesson.md", content)

	result, err := newTestService().ExtractMarkdown(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, content, result)
}

func TestExtractMarkdown_StripsBOM(t *testing.T) {
	path := writeTempFile(t, "lesson.txt", "﻿plain text content")

	result, err := newTestService().ExtractMarkdown(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "plain text content", result)
}

func TestExtractMarkdown_HTMLConversion(t *testing.T) {
	html := `<html><head><script>evil()</script><style>p{}</style></head>
<body><nav>menu</nav><h1>Fishing Basics</h1><p>Cast toward <strong>structure</strong>.</p><footer>foot</footer></body></html>`
	path := writeTempFile(t, "lesson.html", html)

	result, err := newTestService().ExtractMarkdown(context.Background(), path)

	require.NoError(t, err)
	assert.Contains(t, result, "Fishing Basics")
	assert.Contains(t, result, "**structure**")
	assert.NotContains(t, result, "evil()")
	assert.NotContains(t, result, "menu")
}

func TestExtractMarkdown_UnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "lesson.docx", "binary-ish")

	_, err := newTestService().ExtractMarkdown(context.Background(), path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported document format")
}

func TestExtractMarkdown_MissingFile(t *testing.T) {
	_, err := newTestService().ExtractMarkdown(context.Background(), filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}

func TestPageEstimate_WordCountHeuristic(t *testing.T) {
	service := newTestService()

	assert.Equal(t, 1, service.PageEstimate("lesson.md", "short text"))
	assert.Equal(t, 1, service.PageEstimate("lesson.md", ""))

	// 900 words rounds to 2 pages.
	long := strings.Repeat("word ", 900)
	assert.Equal(t, 2, service.PageEstimate("lesson.md", long))
}

func TestStripHTMLTags(t *testing.T) {
	got := stripHTMLTags("<p>Fish &amp; chips</p>\n<div>are   great</div>")
	assert.Equal(t, "Fish & chips are great", got)
}
