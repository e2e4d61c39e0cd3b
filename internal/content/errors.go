package content

import "errors"

var (
	// ErrEmptyInput is returned when a required input (topic, notes, URL)
	// is blank.
	ErrEmptyInput = errors.New("input cannot be empty")

	// ErrNoContent is returned when the model answered without any usable
	// content for a single-call operation.
	ErrNoContent = errors.New("model returned no content")
)
