package services

import (
	"context"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkg/errors"

	"catalog-service/internal/slug"
)

const maxIDAttempts = 5

// NewID returns a random 8-character base62 id.
func NewID() (string, error) {
	return gonanoid.Generate(slug.IDAlphabet, slug.IDLength)
}

// uniqueID draws ids until taken reports one as free.
func uniqueID(ctx context.Context, newID func() (string, error), taken func(context.Context, string) (bool, error)) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id, err := newID()
		if err != nil {
			return "", errors.Wrap(err, "generate id")
		}
		exists, err := taken(ctx, id)
		if err != nil {
			return "", errors.Wrap(err, "check id")
		}
		if !exists {
			return id, nil
		}
	}
	return "", errors.Errorf("no free id after %d attempts", maxIDAttempts)
}
