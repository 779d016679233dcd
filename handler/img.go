package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/render"

	"github.com/julianlk522/stylize/config"
	e "github.com/julianlk522/stylize/error"
	util "github.com/julianlk522/stylize/handler/util"
	"github.com/julianlk522/stylize/model"
	"github.com/julianlk522/stylize/provider"
)

const IMG_FORM_FIELD = "image"

type Relay struct {
	Generator      provider.Generator
	Model          string
	UploadDir      string
	MaxUploadBytes int64
}

func NewRelay(cfg *config.Config, gen provider.Generator) *Relay {
	return &Relay{
		Generator:      gen,
		Model:          cfg.ProviderModel,
		UploadDir:      cfg.UploadDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}
}

// Stage -> read -> forward to provider -> respond.
// Staged file is released on every return path.
func (rl *Relay) GenerateImg(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(rl.MaxUploadBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			render.Render(w, r, e.ErrContentTooLarge(e.ErrImgTooLarge))
			return
		}
		render.Render(w, r, e.ErrInvalidRequest(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, file_header, err := r.FormFile(IMG_FORM_FIELD)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			render.Render(w, r, e.ErrInvalidRequest(e.ErrNoImgFile))
		} else {
			render.Render(w, r, e.ErrInvalidRequest(err))
		}
		return
	}
	defer file.Close()

	staged, err := util.StageUpload(file, rl.UploadDir, file_header.Filename)
	if err != nil {
		render.Render(w, r, e.ErrGenerateImg(errors.Join(e.ErrCouldNotStageImg, err)))
		return
	}
	upload := &model.UploadedImage{
		StagingPath: staged.Path,
		FileName:    file_header.Filename,
		Size:        staged.Size,
	}
	defer func() {
		if err := staged.Release(); err != nil {
			log.Printf("could not release staged image %s: %s", upload.StagingPath, err)
		}
	}()

	upload.Bytes, err = util.ReadStagedImg(staged, file_header.Size)
	if err != nil {
		render.Render(w, r, e.ErrGenerateImg(err))
		return
	}

	// any non-empty payload is forwarded; the type is only logged
	upload.MIMEType = util.DetectMIMEType(upload.Bytes)

	// request context: the provider call is dropped if the client disconnects
	image_url, err := rl.Generator.Generate(r.Context(), rl.Model, upload.Bytes)
	if err != nil {
		render.Render(w, r, e.ErrGenerateImg(err))
		return
	}

	log.Printf("generated image from %s (%s, %dB)", upload.FileName, upload.MIMEType, upload.Size)
	render.Render(w, r, &model.GenerationResult{ImageURL: image_url})
}
