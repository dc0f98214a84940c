package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `<html>
<head><title>Backend Engineer</title><script>var x = 1;</script></head>
<body>
  <nav>Home | Jobs | About</nav>
  <div class="job-description">
    <h1>Backend Engineer</h1>
    <p>We are looking for a backend engineer with Go experience.</p>
    <form id="application-form"><input name="email"></form>
  </div>
  <footer>Copyright 2026</footer>
</body>
</html>`

func TestURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer srv.Close()

	result, err := URL(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "Backend Engineer")
	assert.Contains(t, result.ContentType, "text/html")
}

func TestURL_InvalidURL(t *testing.T) {
	_, err := URL(context.Background(), "not-a-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "invalid URL")
}

func TestURL_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	result, err := URL(context.Background(), srv.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result, "body is still returned for diagnostics")
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Contains(t, err.Error(), "HTTP status 404")
}

func TestExtractPostingText(t *testing.T) {
	text, err := ExtractPostingText(postingHTML, []string{".job-description"}, []string{"form"})
	require.NoError(t, err)

	assert.Contains(t, text, "Backend Engineer")
	assert.Contains(t, text, "Go experience")
	assert.NotContains(t, text, "Home | Jobs", "nav is stripped")
	assert.NotContains(t, text, "Copyright", "footer is stripped")
	assert.NotContains(t, text, "var x", "scripts are stripped")
}

func TestExtractPostingText_FallsBackToBody(t *testing.T) {
	text, err := ExtractPostingText(postingHTML, []string{".no-such-selector"}, nil)
	require.NoError(t, err)
	assert.Contains(t, text, "backend engineer with Go experience")
}

func TestJobPosting(t *testing.T) {
	// Pad the description past the SPA-shell threshold so no browser
	// rendering is attempted.
	filler := strings.Repeat("Responsibilities include building services. ", 20)
	html := strings.Replace(postingHTML, "Go experience.", "Go experience. "+filler, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(html))
	}))
	defer srv.Close()

	result, err := JobPosting(context.Background(), srv.URL, false, nil)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "backend engineer with Go experience")
	assert.NotContains(t, result.Text, "Copyright")
}

func TestJobPosting_FetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := JobPosting(context.Background(), srv.URL, false, nil)
	assert.Error(t, err)
}

func TestCollapseBlankLines(t *testing.T) {
	in := "  Title  \n\n\n  Body line  \n\t\n Last "
	assert.Equal(t, "Title\nBody line\nLast", collapseBlankLines(in))
}
