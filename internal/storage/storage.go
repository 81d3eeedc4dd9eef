// Package storage keeps llama pictures outside the database. A picture row
// records the location returned by Put; the store owns the bytes.
package storage

import (
	"context"
	"errors"
	"io"
	"strconv"
)

// ErrNotExist is returned by Open when nothing is stored at a location.
var ErrNotExist = errors.New("picture object does not exist")

type Store interface {
	// Put writes data under key, replacing any previous object, and returns
	// the location to persist.
	Put(ctx context.Context, key string, data []byte) (string, error)
	Open(ctx context.Context, location string) (io.ReadCloser, error)
	// Remove deletes the object at location. A missing object is not an error.
	Remove(ctx context.Context, location string) error
}

// PictureKey is the conventional object name for a llama's picture.
func PictureKey(llamaID int64) string {
	return strconv.FormatInt(llamaID, 10) + ".png"
}
