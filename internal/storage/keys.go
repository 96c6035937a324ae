package storage

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// NewKey places an upload under prefix with a random name, keeping the extension
// of the client's file name.
func NewKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(prefix, uuid.NewString()+ext)
}
