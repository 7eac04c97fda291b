package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rohits-web03/safehands/internal/repositories"
	"github.com/rohits-web03/safehands/internal/services"
	"github.com/rohits-web03/safehands/internal/session"
	"github.com/rohits-web03/safehands/internal/utils"
	"github.com/rs/zerolog"
)

// Deps are the collaborators the handlers need. Google may be nil when
// OAuth is not configured.
type Deps struct {
	Log         zerolog.Logger
	Sessions    *session.Manager
	Accounts    *services.Accounts
	Google      *services.GoogleAuth
	Vault       *services.Vault
	Assignments *services.Assignments
	Intentions  *services.Intentions
	Profiles    *services.Profiles
	Social      *services.Social
	Onboarding  *services.Onboarding
	Waitlist    *services.Waitlist
	Files       *services.Files

	Production  bool
	FrontendURL string
}

type Handler struct {
	Deps
}

func New(d Deps) *Handler {
	return &Handler{Deps: d}
}

func currentSession(r *http.Request) session.Session {
	s, _ := session.FromContext(r.Context())
	return s
}

func ok(w http.ResponseWriter, status int, message string, data any) {
	utils.JSONResponse(w, status, utils.Payload{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func fail(w http.ResponseWriter, status int, message string) {
	utils.JSONResponse(w, status, utils.Payload{
		Success: false,
		Message: message,
	})
}

// decode writes a 400 and returns false when the body is not valid JSON.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := utils.DecodeJSON(w, r, v); err != nil {
		fail(w, http.StatusBadRequest, "Invalid input")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := utils.ParseID(r.PathValue(name))
	if err != nil {
		fail(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service errors onto status codes. Unexpected errors
// are logged and answered with a generic message.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		fail(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, repositories.ErrNotFound):
		fail(w, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrEmailTaken):
		fail(w, http.StatusConflict, "User already exists with this email")
	case errors.Is(err, repositories.ErrDuplicate):
		fail(w, http.StatusConflict, "Already exists")
	case errors.Is(err, services.ErrNoAssignments):
		fail(w, http.StatusConflict, "Assign a contact first")
	case errors.Is(err, services.ErrUploadMissing):
		fail(w, http.StatusBadRequest, "Uploaded file not found")
	case errors.Is(err, services.ErrInvalidCredentials):
		fail(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrPersistenceDisabled):
		fail(w, http.StatusServiceUnavailable, "Persistence is not configured")
	case errors.Is(err, services.ErrStorageDisabled):
		fail(w, http.StatusServiceUnavailable, "File storage is not configured")
	default:
		h.Log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		fail(w, http.StatusInternalServerError, "Something went wrong")
	}
}
