// Package media implements the video acquisition pipeline: URL classification,
// filename hygiene, the streamed direct download, and the yt-dlp hand-off.
package media

// Outcome describes a completed acquisition.
type Outcome struct {
	// Source is the strategy that produced the artifact
	Source Source
	// FileName is the sanitized name the artifact was stored under
	FileName string
	// Size is the stored size in bytes
	Size int64
}
