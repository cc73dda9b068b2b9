// Package objectstore keeps uploaded event photos.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store persists objects and returns the public URL they are served from.
type Store interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) (url string, err error)
	Delete(ctx context.Context, key string) error
}

// NewKey builds a collision free object key under prefix, keeping ext.
func NewKey(prefix, ext string, now time.Time) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	name := fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString())
	if ext != "" {
		name += "." + ext
	}
	return path.Join(prefix, now.UTC().Format("2006/01"), name)
}
