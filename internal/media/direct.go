package media

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"

	"fetchkit/internal/core"
	"fetchkit/internal/httpclient"
	"fetchkit/internal/storage"
)

// DefaultUserAgent identifies fetchkit on outbound download requests.
const DefaultUserAgent = "fetchkit/1.0"

// videoExts are the extensions accepted for direct downloads when the server
// does not answer with a video/* content type.
var videoExts = map[string]bool{
	".mp4":  true,
	".webm": true,
	".ogg":  true,
	".mov":  true,
}

// DirectFetcher streams a file straight from its URL into the artifact store.
type DirectFetcher struct {
	http      *http.Client
	store     storage.Store
	userAgent string
}

// NewDirectFetcher creates a fetcher backed by store. A nil client falls back
// to the shared HTTP client defaults.
func NewDirectFetcher(client *http.Client, store storage.Store, userAgent string) *DirectFetcher {
	if client == nil {
		client = httpclient.NewHTTPClient(nil)
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &DirectFetcher{http: client, store: store, userAgent: userAgent}
}

// Fetch downloads rawURL and saves it under a name derived from the URL path.
// The response must either carry a video/* content type or the URL path must
// end in a known video extension; anything else is rejected before a byte is
// written. The stored size is returned so the caller can apply its minimum.
func (f *DirectFetcher) Fetch(ctx context.Context, rawURL string) (string, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", 0, core.NewNetworkError(fmt.Sprintf("Error de red: %v", err), err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	// Announce the encodings decodeBody understands. Setting the header
	// ourselves also disables the transport's hidden gzip handling, so the
	// switch below sees the real Content-Encoding.
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := f.http.Do(req)
	if err != nil {
		return "", 0, core.NewNetworkError(fmt.Sprintf("Error de red: %v", err), err)
	}
	defer resp.Body.Close()

	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	// The escaped form keeps percent sequences in the name, which the
	// sanitizer then flattens. Decoding first could smuggle separators in.
	name := baseName(req.URL.EscapedPath())
	if !strings.HasPrefix(ct, "video/") && !videoExts[extOf(name)] {
		return "", 0, core.NewContentMismatchError(fmt.Sprintf("El URL no parece ser un archivo de video directo (Content-Type: %s).", ct))
	}

	if name == "" {
		name = "video.mp4"
	}
	if !strings.Contains(name, ".") {
		name += ".mp4"
	}
	name = SafeName(name)

	body, err := decodeBody(resp)
	if err != nil {
		return "", 0, core.NewNetworkError(fmt.Sprintf("Error de red: %v", err), err)
	}
	defer body.Close()

	size, err := f.store.Save(ctx, name, body)
	if err != nil {
		return "", 0, core.NewFilesystemError(fmt.Sprintf("Error al guardar: %v", err), err)
	}
	return name, size, nil
}

// decodeBody undoes the response's Content-Encoding so the stored bytes are
// the actual media payload.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	case "gzip":
		return gzip.NewReader(resp.Body)
	case "deflate":
		return flate.NewReader(resp.Body), nil
	default:
		return resp.Body, nil
	}
}

// baseName extracts the last segment of a URL path. Unlike path.Base it maps
// a trailing slash to the empty string, which lets the default name kick in.
func baseName(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// extOf splits the extension off a basename. The final dot only counts when a
// non-dot character precedes it, so dotfiles have no extension.
func extOf(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	if strings.Trim(name[:i], ".") == "" {
		return ""
	}
	return strings.ToLower(name[i:])
}
