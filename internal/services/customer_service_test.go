package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/models"
)

func TestCustomerBranding(t *testing.T) {
	repo := newMemRepo()
	s := NewCustomerService(repo)
	ctx := context.Background()

	c, err := s.CreateCustomer(ctx, " NAPO ", "Napo Furniture")
	require.NoError(t, err)
	assert.Equal(t, "napo", c.ID)

	_, err = s.CreateCustomer(ctx, "napo", "Again")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.CreateCustomer(ctx, "", "Nameless")
	assert.ErrorIs(t, err, ErrInvalidInput)

	branding := models.Branding{LogoURL: "https://cdn.example.com/logo.svg", PrimaryColor: "#112233"}
	c, err = s.UpdateBranding(ctx, "Napo", branding)
	require.NoError(t, err)
	assert.Equal(t, branding, c.Branding.Data())

	_, err = s.UpdateBranding(ctx, "ghost", branding)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetCustomer(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
