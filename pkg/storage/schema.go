package storage

import (
	"github.com/blackcoderx/curlew/pkg/curl"
)

// SavedRequest is a normalized request persisted to a YAML file, with a
// name for lookup from the requests directory.
type SavedRequest struct {
	Name    string       `yaml:"name"`    // Unique name for the request
	Request curl.Request `yaml:",inline"` // The normalized request itself
}
