package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidCategory = New(
		"INVALID_CATEGORY",
		"Invalid POI category",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrProviderUnavailable = New(
		"PROVIDER_UNAVAILABLE",
		"Geocoding provider request failed",
		http.StatusBadGateway,
	)

	ErrProviderResponse = New(
		"PROVIDER_BAD_RESPONSE",
		"Geocoding provider returned malformed data",
		http.StatusBadGateway,
	)

	ErrGroupingFailed = New(
		"GROUPING_FAILED",
		"Failed to group points of interest",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
