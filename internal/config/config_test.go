package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `{
		"resume": "resume.pdf",
		"job_url": "https://example.com/jobs/123",
		"verbose": true,
		"server_port": 8080
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "resume.pdf", cfg.Resume)
	assert.Equal(t, "https://example.com/jobs/123", cfg.JobURL)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Empty(t, cfg.Job)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeTempConfig(t, `{"resume": `)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestValidate_JobAndJobURLExclusive(t *testing.T) {
	cfg := Config{Job: "job.txt", JobURL: "https://example.com"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_PasswordAndHashExclusive(t *testing.T) {
	cfg := Config{AuthPassword: "hunter2", AuthPasswordHash: "$2a$12$abc"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_ServerPortRange(t *testing.T) {
	cfg := Config{ServerPort: 70000}
	assert.Error(t, cfg.Validate())

	cfg = Config{ServerPort: 8080}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_ResumeFileMustExist(t *testing.T) {
	cfg := Config{Resume: filepath.Join(t.TempDir(), "missing.pdf")}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume file not found")
}

func TestValidate_ExistingFilesPass(t *testing.T) {
	dir := t.TempDir()
	resume := filepath.Join(dir, "resume.txt")
	job := filepath.Join(dir, "job.txt")
	require.NoError(t, os.WriteFile(resume, []byte("resume"), 0o644))
	require.NoError(t, os.WriteFile(job, []byte("job"), 0o644))

	cfg := Config{Resume: resume, Job: job}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Resume: "mine.pdf", ServerPort: 9000}
	defaults := Config{
		Resume:      "default.pdf",
		Job:         "default-job.txt",
		APIKey:      "default-key",
		DatabaseURL: "postgres://localhost/matches",
		ServerPort:  8080,
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "mine.pdf", merged.Resume, "explicit value wins")
	assert.Equal(t, "default-job.txt", merged.Job)
	assert.Equal(t, "default-key", merged.APIKey)
	assert.Equal(t, "postgres://localhost/matches", merged.DatabaseURL)
	assert.Equal(t, 9000, merged.ServerPort, "explicit port wins")
}

func TestMergeWithDefaults_BoolsNotMerged(t *testing.T) {
	cfg := Config{}
	merged := cfg.MergeWithDefaults(Config{Verbose: true, UseBrowser: true})
	assert.False(t, merged.Verbose)
	assert.False(t, merged.UseBrowser)
}
