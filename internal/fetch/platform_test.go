package fetch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/acme/abc-def", PlatformLever},
		{"https://acme.wd1.myworkdayjobs.com/careers/job/123", PlatformWorkday},
		{"https://acme.workday.com/job/123", PlatformWorkday},
		{"https://careers.example.com/jobs/123", PlatformUnknown},
		{"::bad url::", PlatformUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectPlatform(tt.url), tt.url)
	}
}

func TestPlatformContentSelectors(t *testing.T) {
	assert.Contains(t, PlatformContentSelectors(PlatformGreenhouse), ".job__description")
	assert.Contains(t, PlatformContentSelectors(PlatformLever), ".posting-description")
	assert.Contains(t, PlatformContentSelectors(PlatformWorkday), "[data-automation-id='jobDescription']")
	assert.Contains(t, PlatformContentSelectors(PlatformUnknown), ".job-description")
}

func TestPlatformNoiseSelectors_IncludeCommon(t *testing.T) {
	for _, platform := range []Platform{PlatformGreenhouse, PlatformLever, PlatformWorkday, PlatformUnknown} {
		joined := strings.Join(PlatformNoiseSelectors(platform), ",")
		assert.Contains(t, joined, "form", platform)
		assert.Contains(t, joined, ".eeo-statement", platform)
	}
}

func TestNeedsBrowserRendering(t *testing.T) {
	assert.True(t, NeedsBrowserRendering("   short shell   "))
	assert.False(t, NeedsBrowserRendering(strings.Repeat("job posting text ", 40)))
}
