// Package prompts holds the LLM prompt templates, stored as JSON files and
// embedded at compile time. Each file maps prompt keys to template text with
// {{.Placeholder}} substitution slots.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.json
var promptFS embed.FS

// library is parsed once at startup. The embedded files are immutable, so no
// locking or lazy loading is needed.
var library = mustParse(promptFS)

func mustParse(fsys fs.FS) map[string]map[string]string {
	entries, err := fs.Glob(fsys, "*.json")
	if err != nil {
		panic(fmt.Sprintf("prompts: glob embedded files: %v", err))
	}

	lib := make(map[string]map[string]string, len(entries))
	for _, name := range entries {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			panic(fmt.Sprintf("prompts: read %s: %v", name, err))
		}
		templates := make(map[string]string)
		if err := json.Unmarshal(data, &templates); err != nil {
			panic(fmt.Sprintf("prompts: parse %s: %v", name, err))
		}
		lib[name] = templates
	}
	return lib
}

// Get returns the template stored under key in the named file
// (e.g. "structuring.json").
func Get(filename, key string) (string, error) {
	templates, ok := library[filename]
	if !ok {
		return "", fmt.Errorf("unknown prompt file %s", filename)
	}
	template, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return template, nil
}

// MustGet is Get for prompts required at initialization time.
func MustGet(filename, key string) string {
	template, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return template
}

// Format substitutes {{.Key}} placeholders with values from data.
// Placeholders without a matching key are left intact.
func Format(template string, data map[string]string) string {
	for key, value := range data {
		template = strings.ReplaceAll(template, "{{."+key+"}}", value)
	}
	return template
}

// List returns the sorted prompt keys available in a file.
func List(filename string) ([]string, error) {
	templates, ok := library[filename]
	if !ok {
		return nil, fmt.Errorf("unknown prompt file %s", filename)
	}
	keys := make([]string, 0, len(templates))
	for key := range templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
