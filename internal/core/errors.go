// Package core provides the shared error type for the fetchkit web apps.
package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a lookup or download failure
type ErrorKind string

const (
	// ErrorKindEmptyInput indicates the form was submitted without a value
	ErrorKindEmptyInput ErrorKind = "empty_input"
	// ErrorKindNetwork indicates an upstream request failed at the transport level
	ErrorKindNetwork ErrorKind = "network_error"
	// ErrorKindNotFound indicates the upstream answered with a non-success status
	ErrorKindNotFound ErrorKind = "not_found"
	// ErrorKindContentMismatch indicates a direct URL did not look like a video file
	ErrorKindContentMismatch ErrorKind = "content_mismatch"
	// ErrorKindExtraction indicates the yt-dlp pipeline failed
	ErrorKindExtraction ErrorKind = "extraction_error"
	// ErrorKindInvalidDownload indicates the stored artifact is below the minimum size
	ErrorKindInvalidDownload ErrorKind = "invalid_download"
	// ErrorKindFilesystem indicates the artifact could not be written or moved
	ErrorKindFilesystem ErrorKind = "filesystem_error"
)

// AppError is the base error type for all user-visible failures. Message holds
// the display string rendered inline on the page; Kind drives metric labels.
type AppError struct {
	Kind    ErrorKind
	Message string
	// Original error for debugging (not shown to users)
	Err error
}

// Error implements the error interface
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap implements the error unwrapping interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// DisplayMessage extracts the user-facing message from err. Anything that is
// not an AppError falls back to a generic message so internals never reach the page.
func DisplayMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Ocurrió un error inesperado."
}

// KindOf returns the kind of err, or the empty kind when err is not an AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// NewEmptyInputError creates an empty form submission error
func NewEmptyInputError(message string) *AppError {
	return &AppError{Kind: ErrorKindEmptyInput, Message: message}
}

// NewNetworkError creates a transport-level failure error
func NewNetworkError(message string, err error) *AppError {
	return &AppError{Kind: ErrorKindNetwork, Message: message, Err: err}
}

// NewNotFoundError creates an upstream non-success status error
func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: ErrorKindNotFound, Message: message}
}

// NewContentMismatchError creates a rejected direct download error
func NewContentMismatchError(message string) *AppError {
	return &AppError{Kind: ErrorKindContentMismatch, Message: message}
}

// NewExtractionError creates a yt-dlp pipeline failure error
func NewExtractionError(message string, err error) *AppError {
	return &AppError{Kind: ErrorKindExtraction, Message: message, Err: err}
}

// NewInvalidDownloadError creates an undersized artifact error
func NewInvalidDownloadError(message string) *AppError {
	return &AppError{Kind: ErrorKindInvalidDownload, Message: message}
}

// NewFilesystemError creates an artifact write/move failure error
func NewFilesystemError(message string, err error) *AppError {
	return &AppError{Kind: ErrorKindFilesystem, Message: message, Err: err}
}
