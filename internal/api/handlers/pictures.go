package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/rohits-web03/llamastore/internal/api/schemas"
	"github.com/rohits-web03/llamastore/internal/api/services"
	"github.com/rohits-web03/llamastore/internal/utils"
)

// MaxPictureBytes caps the size of an uploaded picture.
const MaxPictureBytes = 10 << 20

var pictureMessages = errorMessages{
	notFound:  "Llama not found",
	noPicture: "Picture not found",
	conflict:  "Llama already has a picture",
}

type PictureHandler struct {
	pictures *services.PictureService
	log      *zap.SugaredLogger
}

func NewPictureHandler(pictures *services.PictureService, log *zap.SugaredLogger) *PictureHandler {
	return &PictureHandler{pictures: pictures, log: log}
}

// Get godoc
// @Summary Get a llama's picture
// @Tags Llama Picture
// @Produce png
// @Security BearerAuth
// @Param llama_id path int true "Llama ID"
// @Success 200 {file} binary
// @Failure 404 {object} utils.ErrorPayload
// @Failure 422 {object} utils.ErrorPayload
// @Router /llama/{llama_id}/picture [get]
func (h *PictureHandler) Get(w http.ResponseWriter, r *http.Request) {
	msgs := errorMessages{notFound: "Llama picture not found"}
	id, err := schemas.ParseLlamaID(r.PathValue("llama_id"))
	if err != nil {
		writeError(w, r, h.log, err, msgs)
		return
	}
	rc, err := h.pictures.Open(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err, msgs)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.log.Warnw("streaming picture failed", "llama_id", id, "err", err)
	}
}

// Create godoc
// @Summary Create a llama's picture
// @Description The body is the raw image. Any common format is accepted and stored as PNG.
// @Tags Llama Picture
// @Accept png,jpeg,gif,bmp,tiff,webp
// @Produce json
// @Security BearerAuth
// @Param llama_id path int true "Llama ID"
// @Success 201 {object} schemas.LlamaID
// @Failure 400 {object} utils.ErrorPayload
// @Failure 404 {object} utils.ErrorPayload
// @Failure 409 {object} utils.ErrorPayload
// @Router /llama/{llama_id}/picture [post]
func (h *PictureHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, http.StatusCreated, h.pictures.Create)
}

// Update godoc
// @Summary Create or replace a llama's picture
// @Description The previous picture is kept if the new body is not a valid image.
// @Tags Llama Picture
// @Accept png,jpeg,gif,bmp,tiff,webp
// @Produce json
// @Security BearerAuth
// @Param llama_id path int true "Llama ID"
// @Success 200 {object} schemas.LlamaID
// @Failure 400 {object} utils.ErrorPayload
// @Failure 404 {object} utils.ErrorPayload
// @Router /llama/{llama_id}/picture [put]
func (h *PictureHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, http.StatusOK, h.pictures.Update)
}

// Delete godoc
// @Summary Delete a llama's picture
// @Tags Llama Picture
// @Security BearerAuth
// @Param llama_id path int true "Llama ID"
// @Success 204
// @Failure 404 {object} utils.ErrorPayload
// @Router /llama/{llama_id}/picture [delete]
func (h *PictureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := schemas.ParseLlamaID(r.PathValue("llama_id"))
	if err != nil {
		writeError(w, r, h.log, err, pictureMessages)
		return
	}
	if err := h.pictures.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err, pictureMessages)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PictureHandler) upload(w http.ResponseWriter, r *http.Request, status int, store func(context.Context, int64, []byte) error) {
	id, err := schemas.ParseLlamaID(r.PathValue("llama_id"))
	if err != nil {
		writeError(w, r, h.log, err, pictureMessages)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxPictureBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Picture is too large")
			return
		}
		utils.ErrorResponse(w, http.StatusBadRequest, "Could not read llama picture")
		return
	}
	if len(raw) == 0 {
		utils.ErrorResponse(w, http.StatusBadRequest, "No llama picture sent")
		return
	}

	if err := store(r.Context(), id, raw); err != nil {
		writeError(w, r, h.log, err, pictureMessages)
		return
	}
	utils.JSONResponse(w, status, schemas.LlamaID{LlamaID: id})
}
