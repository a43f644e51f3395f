package domain

import "errors"

// Sentinel errors for catalog operations
var (
	// ErrItemNotFound indicates the requested catalog item does not exist
	ErrItemNotFound = errors.New("catalog item not found")

	// ErrServerOffline indicates the media server is unreachable
	ErrServerOffline = errors.New("media server is unreachable")

	// ErrAuthFailed indicates the access token was rejected
	ErrAuthFailed = errors.New("authentication token is invalid")

	// ErrLibraryNotFound indicates the requested library does not exist
	ErrLibraryNotFound = errors.New("library not found")
)
