package errors

import "errors"

var (
	ErrNotFound = errors.New("availability record not found")

	ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

	ErrInvalidRange = errors.New("start date must not be after end date")

	ErrRangeTooLarge = errors.New("date range exceeds the maximum span")
)
