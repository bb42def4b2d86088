package location

import "errors"

var (
	ErrLocationNotFound   = errors.New("location not found")
	ErrInvalidLocationURL = errors.New("could not extract coordinates from location URL")
)
