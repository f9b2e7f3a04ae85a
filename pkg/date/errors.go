package date

import "github.com/pkg/errors"

// Sentinel errors, wrapped with details by the parser, resolver and config.
var (
	ErrInvalidTimezone   = errors.New("invalid timezone")
	ErrInvalidExpression = errors.New("invalid date expression")
	ErrResolution        = errors.New("failed to resolve date")
)
