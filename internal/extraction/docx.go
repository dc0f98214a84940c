package extraction

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/nguyenthenguyen/docx"
)

var (
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
	paragraphEnd = regexp.MustCompile(`</w:p>`)
)

// extractDocxText pulls plain text from a DOCX document. Paragraph boundaries
// become newlines; remaining markup is stripped.
func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = paragraphEnd.ReplaceAllString(content, "\n")
	content = xmlTag.ReplaceAllString(content, "")
	return content, nil
}
