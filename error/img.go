package error

import (
	"errors"
)

var (
	ErrNoImgFile         error = errors.New("no image file provided (expected form field \"image\")")
	ErrImgTooLarge       error = errors.New("image exceeds maximum upload size")
	ErrCouldNotStageImg  error = errors.New("could not stage uploaded image")
	ErrCouldNotReadImg   error = errors.New("could not read staged image")
	ErrRateLimitExceeded error = errors.New("rate limit exceeded")
	ErrRouteNotFound     error = errors.New("route not found")
)
