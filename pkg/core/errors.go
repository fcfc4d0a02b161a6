package core

import (
	"context"
	"errors"
)

// Common errors.
var (
	ErrNotFound  = errors.New("document not found")
	ErrMalformed = errors.New("malformed document")
	ErrInvalidID = errors.New("invalid document id")
)

// Error kinds reported in logs and metrics.
const (
	KindOK        = "ok"
	KindNotFound  = "not_found"
	KindMalformed = "malformed"
	KindInvalidID = "invalid_id"
	KindCanceled  = "canceled"
	KindIO        = "io"
)

// Kind classifies err into one of the Kind* constants.
// A nil error is KindOK.
func Kind(err error) string {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrMalformed):
		return KindMalformed
	case errors.Is(err, ErrInvalidID):
		return KindInvalidID
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindIO
	}
}
