package error

import (
	"log"
	"net/http"

	"github.com/go-chi/render"
)

const GENERATE_IMG_FAILED_MSG = "Error generating image"

type ErrResponse struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"-"`
	StatusText     string `json:"status"`
	ErrorText      string `json:"error,omitempty"`
}

func (er *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	log.Printf("%s: %s", er.StatusText, er.ErrorText)
	render.Status(r, er.HTTPStatusCode)
	return nil
}

// e.g., missing file part
func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest, // 400
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrNotFound(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusNotFound, // 404
		StatusText:     "Resource not found.",
		ErrorText:      err.Error(),
	}
}

func ErrContentTooLarge(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusRequestEntityTooLarge, // 413
		StatusText:     "Content too large.",
		ErrorText:      err.Error(),
	}
}

func ErrTooManyRequests(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusTooManyRequests, // 429
		StatusText:     "Too many requests.",
		ErrorText:      err.Error(),
	}
}

// Relay failures never expose the underlying cause
type GenerateImgErrResponse struct {
	Err     error  `json:"-"`
	Message string `json:"message"`
}

func (er *GenerateImgErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	log.Printf("%s: %v", GENERATE_IMG_FAILED_MSG, er.Err)
	render.Status(r, http.StatusInternalServerError)
	return nil
}

func ErrGenerateImg(err error) render.Renderer {
	return &GenerateImgErrResponse{
		Err:     err,
		Message: GENERATE_IMG_FAILED_MSG,
	}
}
