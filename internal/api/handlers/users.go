package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/rohits-web03/llamastore/internal/api/middleware"
	"github.com/rohits-web03/llamastore/internal/api/schemas"
	"github.com/rohits-web03/llamastore/internal/api/services"
	"github.com/rohits-web03/llamastore/internal/utils"
)

var userMessages = errorMessages{notFound: "User not found"}

type UserHandler struct {
	users *services.UserService
	log   *zap.SugaredLogger
}

func NewUserHandler(users *services.UserService, log *zap.SugaredLogger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account. Only the 1000 most recent accounts are kept.
// @Tags User
// @Accept json
// @Produce json
// @Param body body schemas.UserRegistration true "Email and password"
// @Success 201 {object} schemas.User
// @Failure 400 {object} utils.ErrorPayload
// @Failure 422 {object} utils.ErrorPayload
// @Router /user [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in schemas.UserRegistration
	if err := schemas.DecodeJSON(r.Body, &in); err != nil {
		writeError(w, r, h.log, err, userMessages)
		return
	}
	email, password, err := in.Validate()
	if err != nil {
		writeError(w, r, h.log, err, userMessages)
		return
	}

	u, err := h.users.Register(r.Context(), email, password)
	if err != nil {
		writeError(w, r, h.log, err, userMessages)
		return
	}
	utils.JSONResponse(w, http.StatusCreated, schemas.UserFromModel(u))
}

// GetByEmail godoc
// @Summary Get a user by email
// @Description Only the account that owns the token can be looked up.
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param email path string true "Email address"
// @Success 200 {object} schemas.User
// @Failure 401 {object} utils.ErrorPayload
// @Failure 403 {object} utils.ErrorPayload
// @Failure 404 {object} utils.ErrorPayload
// @Failure 422 {object} utils.ErrorPayload
// @Router /user/{email} [get]
func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if err := schemas.ValidateEmailPath(email); err != nil {
		writeError(w, r, h.log, err, userMessages)
		return
	}
	current, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeError(w, r, h.log, services.ErrUnauthorized, userMessages)
		return
	}

	u, err := h.users.Lookup(r.Context(), current, email)
	if err != nil {
		writeError(w, r, h.log, err, userMessages)
		return
	}
	utils.JSONResponse(w, http.StatusOK, schemas.UserFromModel(u))
}

// List godoc
// @Summary List all users
// @Description Only registered when the server runs with DEBUG=true.
// @Tags User
// @Produce json
// @Success 200 {array} schemas.User
// @Router /user [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	us, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err, userMessages)
		return
	}
	utils.JSONResponse(w, http.StatusOK, schemas.UsersFromModels(us))
}

// CreateToken godoc
// @Summary Create an API token
// @Description Exchanges an email and password for a bearer token valid for 30 minutes.
// @Tags Token
// @Accept json
// @Produce json
// @Param body body schemas.UserRegistration true "Email and password"
// @Success 201 {object} schemas.APIToken
// @Failure 404 {object} utils.ErrorPayload
// @Failure 422 {object} utils.ErrorPayload
// @Router /token [post]
func (h *UserHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	msgs := errorMessages{notFound: "User not found or the password is invalid"}

	var in schemas.UserRegistration
	if err := schemas.DecodeJSON(r.Body, &in); err != nil {
		writeError(w, r, h.log, err, msgs)
		return
	}
	email, password, err := in.Validate()
	if err != nil {
		writeError(w, r, h.log, err, msgs)
		return
	}

	u, err := h.users.Authenticate(r.Context(), email, password)
	if err != nil {
		writeError(w, r, h.log, err, msgs)
		return
	}
	token, err := h.users.IssueToken(r.Context(), u)
	if err != nil {
		writeError(w, r, h.log, err, msgs)
		return
	}
	utils.JSONResponse(w, http.StatusCreated, schemas.NewAPIToken(token))
}
