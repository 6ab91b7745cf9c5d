package ports

import (
	"context"
	"io"
)

// ImageStore keeps pet pictures outside the database. Save returns the
// location recorded in Pet.ImageURL.
type ImageStore interface {
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
	Delete(ctx context.Context, location string) error
}
