//go:build e2e

package e2e

import (
	"html"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

// postForm submits a single-field form to the app root and returns the
// response, the way a browser submits the search form.
func postForm(t *testing.T, baseURL, field, value string) *http.Response {
	t.Helper()
	resp, err := http.PostForm(baseURL+"/", url.Values{field: {value}})
	require.NoError(t, err)
	return resp
}

// pageText reads the response body and undoes HTML entity escaping so tests
// can assert the exact user-facing messages (apostrophes render as &#39;).
func pageText(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return html.UnescapeString(string(body))
}

// closeBody is a helper to close response body in defer statements.
func closeBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
}
