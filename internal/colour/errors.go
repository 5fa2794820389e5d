package colour

import "fmt"

// InvalidImageError is returned when an image cannot be used for extraction:
// it could not be decoded, it is nil, or it has zero area.
type InvalidImageError struct {
	Reason string
	Err    error
}

func (e *InvalidImageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid image: %s: %v", e.Reason, e.Err)
	}
	return "invalid image: " + e.Reason
}

func (e *InvalidImageError) Unwrap() error {
	return e.Err
}

// InvalidParamsError is returned when an extraction parameter or a palette
// edit argument is out of range. No work is performed when it is returned.
type InvalidParamsError struct {
	Field  string
	Reason string
}

func (e *InvalidParamsError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
