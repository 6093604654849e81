package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func TestConvertMarkdownToPDF(t *testing.T) {
	service := NewService(arbor.NewLogger())

	markdown := `# Lesson Draft

Some **bold** prose with a ` + "`code span`" + `.

[VISUAL INSERT: versus_split - Direct comparison of line types.]
Graphic Details: data_payload={}; palette=[]; mood=Calm

- First point
- Second point

| Species | Habitat |
| --- | --- |
| Bass | Weedy flats |
`

	pdf, err := service.ConvertMarkdownToPDF(markdown, "Lesson Draft")

	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestConvertMarkdownToPDF_EmptyInput(t *testing.T) {
	service := NewService(arbor.NewLogger())

	pdf, err := service.ConvertMarkdownToPDF("", "Empty")

	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}

func TestStripFrontmatter(t *testing.T) {
	input := "---\ntitle: Draft\n---\n# Body"
	assert.Equal(t, "# Body", stripFrontmatter(input))

	noFrontmatter := "# Body only"
	assert.Equal(t, noFrontmatter, stripFrontmatter(noFrontmatter))

	unclosed := "---\ntitle: Draft\n# Body"
	assert.Equal(t, unclosed, stripFrontmatter(unclosed))
}
