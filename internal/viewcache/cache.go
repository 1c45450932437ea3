// Package viewcache caches rendered views keyed by request path. A
// successful invoice mutation invalidates the list view's entry so the
// next request re-renders from current storage state.
package viewcache

import (
	"context"
	"errors"
)

// ErrMiss is returned by Get when the path has no cached entry.
var ErrMiss = errors.New("view not cached")

type Cache interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Set(ctx context.Context, path string, body []byte) error
	Invalidate(ctx context.Context, path string) error
}
