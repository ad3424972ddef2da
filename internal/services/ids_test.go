package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/slug"
)

func TestNewIDShape(t *testing.T) {
	for i := 0; i < 50; i++ {
		id, err := NewID()
		require.NoError(t, err)
		assert.True(t, slug.IsID(id), id)
	}
}

func TestUniqueIDGivesUp(t *testing.T) {
	always := func(context.Context, string) (bool, error) { return true, nil }
	_, err := uniqueID(context.Background(), NewID, always)
	assert.Error(t, err)
}
