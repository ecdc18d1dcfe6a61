package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(51.5072, -0.1276))
	assert.True(t, ValidateCoordinates(-90, 180))
	assert.False(t, ValidateCoordinates(90.1, 0))
	assert.False(t, ValidateCoordinates(0, -180.5))
}

func TestFormatProximity(t *testing.T) {
	assert.Equal(t, "-0.1276,51.5072", FormatProximity(-0.1276, 51.5072))
	assert.Equal(t, "2,41", FormatProximity(2, 41))
}
