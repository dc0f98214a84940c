package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
)

func TestExtractTextCommand(t *testing.T) {
	dir := t.TempDir()
	resumePath := filepath.Join(dir, "resume.txt")
	outPath := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(resumePath, []byte(
		"Dana Smith\ndana@example.com\n5551234567\nhttps://github.com/dana\nEngineer at Acme.",
	), 0o644))

	extractInputFile = resumePath
	extractOutputFile = outPath

	require.NoError(t, runExtractText(extractTextCmd, nil))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var doc types.ResumeDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc.RawText, "Dana Smith")
	assert.Equal(t, "dana@example.com", doc.Links.Email)
	assert.Equal(t, "https://github.com/dana", doc.Links.GitHub)
	assert.Contains(t, doc.Phones, "5551234567")
}

func TestExtractTextCommand_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	resumePath := filepath.Join(dir, "resume.png")
	require.NoError(t, os.WriteFile(resumePath, []byte("binary"), 0o644))

	extractInputFile = resumePath
	extractOutputFile = ""

	err := runExtractText(extractTextCmd, nil)
	assert.Error(t, err)
}
