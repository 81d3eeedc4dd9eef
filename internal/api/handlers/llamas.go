package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/rohits-web03/llamastore/internal/api/schemas"
	"github.com/rohits-web03/llamastore/internal/api/services"
	"github.com/rohits-web03/llamastore/internal/utils"
)

var llamaMessages = errorMessages{notFound: "Llama not found"}

type LlamaHandler struct {
	llamas *services.LlamaService
	log    *zap.SugaredLogger
}

func NewLlamaHandler(llamas *services.LlamaService, log *zap.SugaredLogger) *LlamaHandler {
	return &LlamaHandler{llamas: llamas, log: log}
}

// List godoc
// @Summary Get all the llamas
// @Tags Llama
// @Produce json
// @Security BearerAuth
// @Success 200 {array} schemas.Llama
// @Failure 401 {object} utils.ErrorPayload
// @Failure 403 {object} utils.ErrorPayload
// @Router /llama [get]
func (h *LlamaHandler) List(w http.ResponseWriter, r *http.Request) {
	ls, err := h.llamas.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err, llamaMessages)
		return
	}
	utils.JSONResponse(w, http.StatusOK, schemas.LlamasFromModels(ls))
}

// Get godoc
// @Summary Get a llama by ID
// @Tags Llama
// @Produce json
// @Security BearerAuth
// @Param llama_id path int true "Llama ID"
// @Success 200 {object} schemas.Llama
// @Failure 404 {object} utils.ErrorPayload
// @Failure 422 {object} utils.ErrorPayload
// @Router /llama/{llama_id} [get]
func (h *LlamaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := schemas.ParseLlamaID(r.PathValue("llama_id"))
	if err != nil {
		writeError(w, r, h.log, err, llamaMessages)
		return
	}
	l, err := h.llamas.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err, llamaMessages)
		return
	}
	utils.JSONResponse(w, http.StatusOK, schemas.LlamaFromModel(l))
}

// Create godoc
// @Summary Create a llama
// @Tags Llama
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body schemas.LlamaCreate true "New llama"
// @Success 201 {object} schemas.Llama
// @Failure 409 {object} utils.ErrorPayload
// @Failure 422 {object} utils.ErrorPayload
// @Router /llama [post]
func (h *LlamaHandler) Create(w http.ResponseWriter, r *http.Request) {
	d, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}
	l, err := h.llamas.Create(r.Context(), d)
	if err != nil {
		writeError(w, r, h.log, err, llamaMessages)
		return
	}
	utils.JSONResponse(w, http.StatusCreated, schemas.LlamaFromModel(l))
}

// Update godoc
// @Summary Update a llama
// @Description Replaces the llama. If the ID does not exist a new llama is created and 201 returned.
// @Tags Llama
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param llama_id path int true "Llama ID"
// @Param body body schemas.LlamaCreate true "Llama"
// @Success 200 {object} schemas.Llama
// @Success 201 {object} schemas.Llama
// @Failure 409 {object} utils.ErrorPayload
// @Failure 422 {object} utils.ErrorPayload
// @Router /llama/{llama_id} [put]
func (h *LlamaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := schemas.ParseLlamaID(r.PathValue("llama_id"))
	if err != nil {
		writeError(w, r, h.log, err, llamaMessages)
		return
	}
	d, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	l, created, err := h.llamas.Update(r.Context(), id, d)
	if err != nil {
		writeError(w, r, h.log, err, llamaMessages)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	utils.JSONResponse(w, status, schemas.LlamaFromModel(l))
}

// Delete godoc
// @Summary Delete a llama
// @Description Also deletes the llama's picture.
// @Tags Llama
// @Security BearerAuth
// @Param llama_id path int true "Llama ID"
// @Success 204
// @Failure 404 {object} utils.ErrorPayload
// @Failure 422 {object} utils.ErrorPayload
// @Router /llama/{llama_id} [delete]
func (h *LlamaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := schemas.ParseLlamaID(r.PathValue("llama_id"))
	if err != nil {
		writeError(w, r, h.log, err, llamaMessages)
		return
	}
	if err := h.llamas.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err, llamaMessages)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LlamaHandler) decodeDraft(w http.ResponseWriter, r *http.Request) (services.LlamaDraft, bool) {
	var in schemas.LlamaCreate
	if err := schemas.DecodeJSON(r.Body, &in); err != nil {
		writeError(w, r, h.log, err, llamaMessages)
		return services.LlamaDraft{}, false
	}
	d, err := in.Validate()
	if err != nil {
		writeError(w, r, h.log, err, llamaMessages)
		return services.LlamaDraft{}, false
	}
	return d, true
}
