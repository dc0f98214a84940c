package extraction

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF pulls plain text and link-annotation URIs from every page of a
// PDF document. Pages that fail to decode are skipped rather than failing the
// whole file.
func extractPDF(data []byte) (string, []string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	var uris []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		uris = append(uris, annotationURIs(page)...)
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	if sb.Len() == 0 {
		return "", nil, fmt.Errorf("no extractable text in pdf (%d pages)", numPages)
	}
	return sb.String(), uris, nil
}

// annotationURIs collects URI actions from a page's link annotations. Resume
// hyperlinks are often stored only as annotations, with anchor text like
// "LinkedIn" in the visible layer, so the text regex alone never sees them.
func annotationURIs(page pdf.Page) []string {
	annots := page.V.Key("Annots")
	if annots.Kind() != pdf.Array {
		return nil
	}

	var uris []string
	for i := 0; i < annots.Len(); i++ {
		uri := annots.Index(i).Key("A").Key("URI")
		if uri.Kind() != pdf.String {
			continue
		}
		if s := strings.TrimSpace(uri.RawString()); s != "" {
			uris = append(uris, s)
		}
	}
	return uris
}
