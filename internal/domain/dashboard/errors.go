package dashboard

import "errors"

var (
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")
)
