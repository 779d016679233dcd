package handler

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/render"

	e "github.com/julianlk522/stylize/error"
)

//go:embed assets/index.html
var upload_page []byte

func GetUploadPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(upload_page)
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, e.ErrNotFound(e.ErrRouteNotFound))
}

func TooManyRequests(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, e.ErrTooManyRequests(e.ErrRateLimitExceeded))
}
