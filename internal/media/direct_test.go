package media

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fetchkit/internal/core"
	"fetchkit/internal/storage"
)

func newDirectStore(t *testing.T) (*storage.LocalStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocal(storage.LocalConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	return store, dir
}

func serveVideo(t *testing.T, payload []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "video/mp4")
		w.Write(payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_SavesVideoByContentType(t *testing.T) {
	payload := []byte(strings.Repeat("frame", 100))
	srv := serveVideo(t, payload)
	store, dir := newDirectStore(t)
	f := NewDirectFetcher(srv.Client(), store, "")

	name, size, err := f.Fetch(context.Background(), srv.URL+"/media/clip.bin")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if name != "clip.bin" {
		t.Errorf("name = %q, want clip.bin", name)
	}
	if size != int64(len(payload)) {
		t.Errorf("size = %d, want %d", size, len(payload))
	}
	got, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("stored file: %v", err)
	}
	if string(got) != string(payload) {
		t.Error("stored bytes differ from payload")
	}
}

func TestFetch_AcceptsByExtension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte("webm-bytes"))
	}))
	defer srv.Close()
	store, _ := newDirectStore(t)
	f := NewDirectFetcher(srv.Client(), store, "")

	name, _, err := f.Fetch(context.Background(), srv.URL+"/files/clip.webm")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if name != "clip.webm" {
		t.Errorf("name = %q, want clip.webm", name)
	}
}

func TestFetch_ExtensionOverridesContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("mislabeled but named like a video"))
	}))
	defer srv.Close()
	store, _ := newDirectStore(t)
	f := NewDirectFetcher(srv.Client(), store, "")

	name, _, err := f.Fetch(context.Background(), srv.URL+"/files/talk.mp4")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if name != "talk.mp4" {
		t.Errorf("name = %q, want talk.mp4", name)
	}
}

func TestFetch_RejectsNonVideo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "Text/HTML")
		w.Write([]byte("<html>not a video</html>"))
	}))
	defer srv.Close()
	store, dir := newDirectStore(t)
	f := NewDirectFetcher(srv.Client(), store, "")

	_, _, err := f.Fetch(context.Background(), srv.URL+"/page")
	if core.KindOf(err) != core.ErrorKindContentMismatch {
		t.Fatalf("kind = %q, want content_mismatch", core.KindOf(err))
	}
	want := "El URL no parece ser un archivo de video directo (Content-Type: text/html)."
	if core.DisplayMessage(err) != want {
		t.Errorf("message = %q, want %q", core.DisplayMessage(err), want)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("rejected download must not touch the store, found %d entries", len(entries))
	}
}

func TestFetch_NameDerivation(t *testing.T) {
	payload := []byte("video-data")
	tests := []struct {
		name string
		path string
		want string
	}{
		{"simple basename", "/v/clip.mp4", "clip.mp4"},
		{"query ignored", "/v/clip.mp4?token=abc", "clip.mp4"},
		{"trailing slash falls back", "/v/", "video.mp4"},
		{"no extension appends mp4", "/watch", "watch.mp4"},
		{"percent sequence flattened", "/media/My%20Clip.mp4", "My_20Clip.mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serveVideo(t, payload)
			store, dir := newDirectStore(t)
			f := NewDirectFetcher(srv.Client(), store, "")

			name, _, err := f.Fetch(context.Background(), srv.URL+tt.path)
			if err != nil {
				t.Fatalf("Fetch: %v", err)
			}
			if name != tt.want {
				t.Errorf("name = %q, want %q", name, tt.want)
			}
			if _, err := os.Stat(filepath.Join(dir, tt.want)); err != nil {
				t.Errorf("stored file missing: %v", err)
			}
		})
	}
}

func TestFetch_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	store, _ := newDirectStore(t)
	f := NewDirectFetcher(nil, store, "")

	_, _, err := f.Fetch(context.Background(), srv.URL+"/clip.mp4")
	if core.KindOf(err) != core.ErrorKindNetwork {
		t.Fatalf("kind = %q, want network_error", core.KindOf(err))
	}
	if !strings.HasPrefix(core.DisplayMessage(err), "Error de red: ") {
		t.Errorf("message = %q, want Error de red prefix", core.DisplayMessage(err))
	}
}

func TestFetch_DecodesGzipBody(t *testing.T) {
	payload := []byte(strings.Repeat("raw-video-bytes ", 64))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "video/webm")
		w.Header().Set("Content-Encoding", "gzip")
		zw := gzip.NewWriter(w)
		zw.Write(payload)
		zw.Close()
	}))
	defer srv.Close()
	store, dir := newDirectStore(t)
	f := NewDirectFetcher(srv.Client(), store, "")

	name, size, err := f.Fetch(context.Background(), srv.URL+"/enc/clip.webm")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if size != int64(len(payload)) {
		t.Errorf("size = %d, want decoded length %d", size, len(payload))
	}
	got, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(payload) {
		t.Error("stored bytes should be the decoded payload")
	}
}

func TestFetch_SaveFailure(t *testing.T) {
	srv := serveVideo(t, []byte("video-data"))
	store, dir := newDirectStore(t)
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	f := NewDirectFetcher(srv.Client(), store, "")

	_, _, err := f.Fetch(context.Background(), srv.URL+"/clip.mp4")
	if core.KindOf(err) != core.ErrorKindFilesystem {
		t.Fatalf("kind = %q, want filesystem_error", core.KindOf(err))
	}
	if !strings.HasPrefix(core.DisplayMessage(err), "Error al guardar: ") {
		t.Errorf("message = %q, want Error al guardar prefix", core.DisplayMessage(err))
	}
}

func TestFetch_SendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "video/mp4")
		w.Write([]byte("x"))
	}))
	defer srv.Close()
	store, _ := newDirectStore(t)
	f := NewDirectFetcher(srv.Client(), store, "probe/2.0")

	if _, _, err := f.Fetch(context.Background(), srv.URL+"/clip.mp4"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotUA != "probe/2.0" {
		t.Errorf("User-Agent = %q, want probe/2.0", gotUA)
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/a/b/clip.mp4", "clip.mp4"},
		{"/a/b/", ""},
		{"/", ""},
		{"", ""},
		{"clip.mp4", "clip.mp4"},
	}
	for _, tt := range tests {
		if got := baseName(tt.in); got != tt.want {
			t.Errorf("baseName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtOf(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"clip.MP4", ".mp4"},
		{"archive.tar.gz", ".gz"},
		{"noext", ""},
		{".hidden", ""},
		{"..mp4", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := extOf(tt.in); got != tt.want {
			t.Errorf("extOf(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
