package api

import (
	"errors"
	"net/http"

	"github.com/rpupo63/folio-backend/errs"
	"github.com/rpupo63/folio-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxUploadSize = 20 << 20

type mediaHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     storage.MediaStore
}

func newMediaHandler(store storage.MediaStore) mediaHandler {
	logger := log.With().Str("handlerName", "mediaHandler").Logger()

	return mediaHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// upload stores an image or document and returns its public URL
// @Summary Upload media
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to store"
// @Param folder formData string false "One of avatars, cv, projects, blog"
// @Success 201 {object} MediaResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Missing file or unknown folder"
// @Failure 413 {object} ErrorResponse "Request Entity Too Large"
// @Router /admin/media [post]
func (h mediaHandler) upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.store == nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("media storage is not configured", nil))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxUploadSize))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("upload", err))
			return
		}

		folder := r.FormValue("folder")
		if folder == "" {
			folder = "blog"
		}
		if !storage.Folders[folder] {
			h.responder.WriteError(w, errs.NewInvalidFieldError("folder", "must be one of avatars, cv, projects, blog"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		url, err := h.store.Save(r.Context(), storage.ObjectKey(folder, header.Filename), contentType, file)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("could not store media", err))
			return
		}

		h.logger.Info().Str("folder", folder).Str("url", url).Msg("stored media")
		h.responder.WriteJSONStatus(w, http.StatusCreated, MediaResponse{URL: url})
	}
}
