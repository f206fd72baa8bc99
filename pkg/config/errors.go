package config

import "errors"

// Document errors
var (
	ErrKeyNotFound       = errors.New("key not found")
	ErrInvalidType       = errors.New("invalid value type")
	ErrLibraryNotFound   = errors.New("library not found")
	ErrUnsupportedFormat = errors.New("unsupported document format")
)
