// Package extraction converts resume documents (PDF, DOCX, plain text) into
// cleaned plain text plus a classified set of links found in the document.
package extraction

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Input identifies a resume document to extract. Either Path or Data must be
// set; when Data is used, Filename supplies the extension for format dispatch.
type Input struct {
	Path     string
	Data     []byte
	Filename string
}

// name returns the best available identifier for error messages.
func (in Input) name() string {
	if in.Path != "" {
		return in.Path
	}
	if in.Filename != "" {
		return in.Filename
	}
	return "(in-memory document)"
}

// ext returns the lowercased file extension used for format dispatch.
func (in Input) ext() string {
	name := in.Path
	if name == "" {
		name = in.Filename
	}
	return strings.ToLower(filepath.Ext(name))
}

// Extract reads the document, pulls out its plain text, and classifies any
// links and phone numbers found. The returned RawText is cleaned but otherwise
// unaltered; nothing downstream ever re-reads the original file.
func Extract(input Input) (*types.ResumeDocument, error) {
	data := input.Data
	if data == nil {
		if input.Path == "" {
			return nil, &ExtractionError{Source: input.name(), Cause: fmt.Errorf("no path or data provided")}
		}
		var err error
		data, err = os.ReadFile(input.Path)
		if err != nil {
			return nil, &ExtractionError{Source: input.name(), Cause: err}
		}
	}

	var text string
	var annotLinks []string
	var err error
	switch ext := input.ext(); ext {
	case ".pdf":
		text, annotLinks, err = extractPDF(data)
	case ".docx":
		text, err = extractDocxText(data)
	case ".txt", ".text", ".md":
		text = string(data)
	default:
		return nil, &UnsupportedFormatError{Format: ext}
	}
	if err != nil {
		return nil, &ExtractionError{Source: input.name(), Cause: err}
	}

	links := ClassifyLinks(MergeLinks(FindLinks(text), annotLinks))
	doc := &types.ResumeDocument{
		RawText: CleanText(text),
		Links:   links,
		Phones:  FindPhones(text),
	}
	return doc, nil
}

var multiSpace = regexp.MustCompile(`[ \t]+`)

// CleanText normalizes extracted text: consistent line endings, single spaces
// within lines, and at most one blank line between blocks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		line = multiSpace.ReplaceAllString(strings.TrimSpace(line), " ")
		if line == "" {
			blanks++
			if blanks > 1 {
				continue
			}
		} else {
			blanks = 0
		}
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}
