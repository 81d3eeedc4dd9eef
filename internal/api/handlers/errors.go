package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/rohits-web03/llamastore/internal/api/middleware"
	"github.com/rohits-web03/llamastore/internal/api/schemas"
	"github.com/rohits-web03/llamastore/internal/api/services"
	"github.com/rohits-web03/llamastore/internal/utils"
)

// errorMessages are the route specific details used for not-found and
// conflict responses.
type errorMessages struct {
	notFound  string
	noPicture string
	conflict  string
}

// writeError maps a service or validation error to its response. Anything it
// does not recognise is logged and answered with a 500.
func writeError(w http.ResponseWriter, r *http.Request, log *zap.SugaredLogger, err error, msgs errorMessages) {
	var verrs schemas.ValidationErrors
	var conflict *services.ConflictError

	switch {
	case errors.As(err, &verrs):
		utils.ErrorResponse(w, http.StatusUnprocessableEntity, verrs)
	case errors.As(err, &conflict):
		utils.ErrorResponse(w, http.StatusConflict, conflict.Error())
	case errors.Is(err, services.ErrConflict):
		utils.ErrorResponse(w, http.StatusConflict, msgs.conflict)
	case errors.Is(err, services.ErrNoPicture) && msgs.noPicture != "":
		utils.ErrorResponse(w, http.StatusNotFound, msgs.noPicture)
	case errors.Is(err, services.ErrNotFound):
		utils.ErrorResponse(w, http.StatusNotFound, msgs.notFound)
	case errors.Is(err, services.ErrAlreadyRegistered):
		utils.ErrorResponse(w, http.StatusBadRequest, "User already registered")
	case errors.Is(err, services.ErrInvalidImage):
		utils.ErrorResponse(w, http.StatusBadRequest, "Body is not a valid image")
	case errors.Is(err, services.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", "Bearer")
		utils.ErrorResponse(w, http.StatusUnauthorized, "Could not validate credentials")
	default:
		log.Errorw("request failed",
			"err", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFrom(r.Context()),
		)
		utils.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}
