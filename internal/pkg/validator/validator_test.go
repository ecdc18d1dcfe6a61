package validator

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearby-poi-service/internal/pkg/errors"
)

type point struct {
	Lat float64 `validate:"min=-90,max=90"`
	Lng float64 `validate:"min=-180,max=180"`
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(&point{Lat: 51.5, Lng: -0.12}))

	err := Validate(&point{Lat: 91, Lng: -181})
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, "INVALID_REQUEST", appErr.Code)
	assert.Equal(t, "max", appErr.Details["lat"])
	assert.Equal(t, "min", appErr.Details["lng"])
}
