package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

var (
	urlPattern   = regexp.MustCompile(`https?://[^\s<>()\[\]{}"']+`)
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\b\d{10}\b`)
)

// FindLinks returns all URLs and email addresses found in the text, in
// document order, with trailing punctuation trimmed.
func FindLinks(text string) []string {
	var links []string
	seen := make(map[string]bool)

	add := func(link string) {
		link = strings.TrimRight(link, ".,;:")
		if link != "" && !seen[link] {
			seen[link] = true
			links = append(links, link)
		}
	}

	for _, match := range urlPattern.FindAllString(text, -1) {
		add(match)
	}
	for _, match := range emailPattern.FindAllString(text, -1) {
		add(match)
	}
	return links
}

// MergeLinks appends extra links (PDF annotation URIs) to those found in the
// text, skipping blanks and anything the text scan already produced.
func MergeLinks(found, extras []string) []string {
	seen := make(map[string]bool, len(found))
	for _, link := range found {
		seen[link] = true
	}
	for _, link := range extras {
		link = strings.TrimSpace(link)
		if link == "" || seen[link] {
			continue
		}
		seen[link] = true
		found = append(found, link)
	}
	return found
}

// ClassifyLinks sorts raw links into profile links (email, LinkedIn, GitHub,
// Medium) and everything else as project links. The first match wins for each
// profile slot; later duplicates fall through to projects.
func ClassifyLinks(links []string) types.LinkSet {
	var set types.LinkSet
	for _, link := range links {
		lower := strings.ToLower(link)
		switch {
		case strings.HasPrefix(lower, "mailto:"):
			if set.Email == "" {
				set.Email = strings.TrimPrefix(link, "mailto:")
				continue
			}
		case strings.Contains(lower, "@") && !strings.HasPrefix(lower, "http"):
			if set.Email == "" {
				set.Email = link
				continue
			}
		case strings.Contains(lower, "linkedin."):
			if set.LinkedIn == "" {
				set.LinkedIn = link
				continue
			}
		case strings.Contains(lower, "github."):
			if set.GitHub == "" {
				set.GitHub = link
				continue
			}
		case strings.Contains(lower, "medium."):
			if set.Medium == "" {
				set.Medium = link
				continue
			}
		}
		set.Projects = append(set.Projects, link)
	}
	return set
}

// FindPhones returns 10-digit phone numbers found in the text.
func FindPhones(text string) []string {
	var phones []string
	seen := make(map[string]bool)
	for _, match := range phonePattern.FindAllString(text, -1) {
		if !seen[match] {
			seen[match] = true
			phones = append(phones, match)
		}
	}
	return phones
}
