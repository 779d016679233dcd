package model

import (
	"net/http"

	"github.com/go-chi/render"
)

// Lives only for the duration of one relay request
type UploadedImage struct {
	Bytes       []byte
	MIMEType    string
	StagingPath string
	FileName    string
	Size        int64
}

type GenerationResult struct {
	ImageURL string `json:"image_url"`
}

func (gr *GenerationResult) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusOK)
	return nil
}
