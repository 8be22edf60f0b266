package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Common constants
const (
	// DateLayout is the calendar date format used for review dates and release dates
	DateLayout = "2006-01-02"

	// MinRating and MaxRating bound a review rating
	MinRating = 0
	MaxRating = 10

	// encodedSpace is the literal sequence API Gateway leaves in reviewer path segments
	encodedSpace = "%20"
)

var (
	// ErrMissingBody is returned when a request that requires a body has none
	ErrMissingBody = errors.New("request body is required")

	// ErrInvalidBody is returned when a body is not a JSON object
	ErrInvalidBody = errors.New("request body must be a JSON object")
)

// ParamError reports a path or query parameter that could not be parsed
type ParamError struct {
	Param string
	Value string
}

func (e *ParamError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s is required", e.Param)
	}
	return fmt.Sprintf("invalid %s: %q", e.Param, e.Value)
}

// ParseMovieID parses a movie id path segment. Zero and negative ids are rejected.
func ParseMovieID(raw string) (int, error) {
	id, err := ParseIntParam("movieId", raw)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, &ParamError{Param: "movieId", Value: raw}
	}
	return id, nil
}

// ParseIntParam parses a required integer parameter
func ParseIntParam(name, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &ParamError{Param: name}
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ParamError{Param: name, Value: raw}
	}
	return v, nil
}

// ParseOptionalIntParam parses an optional integer parameter. An empty value yields nil.
func ParseOptionalIntParam(name, raw string) (*int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := ParseIntParam(name, raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// NormalizeReviewerName replaces every literal "%20" with a space so the
// name matches the stored sort key byte for byte.
func NormalizeReviewerName(name string) string {
	return strings.ReplaceAll(name, encodedSpace, " ")
}

// ParseDate parses a calendar date in DateLayout. It is the same rule the
// datetime validator tag applies to new reviews.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s", value, DateLayout)
	}
	return t, nil
}
