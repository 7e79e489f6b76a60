package server

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"fetchkit/internal/core"
	"fetchkit/internal/media"
	"fetchkit/internal/storage"
)

// MediagrabHandler serves the video download form and the saved artifacts.
type MediagrabHandler struct {
	downloader *media.Downloader
	store      storage.Store
}

// NewMediagrab creates the handler behind the mediagrab app.
func NewMediagrab(downloader *media.Downloader, store storage.Store) *MediagrabHandler {
	return &MediagrabHandler{downloader: downloader, store: store}
}

// Register implements App
func (h *MediagrabHandler) Register(e *echo.Echo) {
	e.GET("/", h.Index)
	e.POST("/", h.Download)
	e.GET("/download/:filename", h.Serve)
}

// mediagrabPage is the template payload for the download page. Saved is only
// set when the artifact passed the minimum size check, so the page never
// links to a rejected file.
type mediagrabPage struct {
	URL     string
	Message string
	Saved   string
}

// Index renders the empty download form.
func (h *MediagrabHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "mediagrab.html", mediagrabPage{})
}

// Download handles a submitted URL.
func (h *MediagrabHandler) Download(c echo.Context) error {
	rawURL := c.FormValue("url")
	page := mediagrabPage{URL: strings.TrimSpace(rawURL)}

	out, err := h.downloader.Download(c.Request().Context(), rawURL)
	if err != nil {
		slog.Warn("download failed",
			"request_id", requestID(c), "url", page.URL, "error", err)
		page.Message = core.DisplayMessage(err)
		return c.Render(http.StatusOK, "mediagrab.html", page)
	}

	page.Saved = out.FileName
	if out.Source == media.SourcePlatformMedia {
		page.Message = fmt.Sprintf("Descargado (yt-dlp): %s", out.FileName)
	} else {
		page.Message = fmt.Sprintf("Descargado como %s", out.FileName)
	}
	return c.Render(http.StatusOK, "mediagrab.html", page)
}

// Serve streams a stored artifact as an attachment. Names that could escape
// the store resolve to not-found.
func (h *MediagrabHandler) Serve(c echo.Context) error {
	name := c.Param("filename")
	rc, size, err := h.store.Open(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}
	defer rc.Close()

	ctype := mime.TypeByExtension(filepath.Ext(name))
	if ctype == "" {
		ctype = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(size, 10))
	return c.Stream(http.StatusOK, ctype, rc)
}
