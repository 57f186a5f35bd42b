package core

import "errors"

var (
	ErrNotFound       = errors.New("folio: not found")
	ErrUnknownRoute   = errors.New("folio: unknown route")
	ErrDuplicateRoute = errors.New("folio: duplicate route")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnknownRoute)
}
