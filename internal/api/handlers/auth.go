package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/rohits-web03/safehands/internal/models"
	"github.com/rohits-web03/safehands/internal/repositories"
	"github.com/rohits-web03/safehands/internal/services"
	"github.com/rohits-web03/safehands/internal/session"
)

const oauthStateCookie = "oauth_state"

func (h *Handler) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if h.Production {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   h.Production,
		HttpOnly: true,
		SameSite: sameSite,
	})
}

// signIn starts a session for user and sets the token cookie.
func (h *Handler) signIn(w http.ResponseWriter, r *http.Request, user models.User) (session.Session, error) {
	role, err := h.Accounts.Role(r.Context(), user.ID)
	if err != nil {
		return session.Session{}, err
	}
	token, sess, err := h.Sessions.Begin(r.Context(), user, role)
	if err != nil {
		return session.Session{}, err
	}
	h.setCookie(w, session.CookieName, token, int(h.Sessions.TTL()/time.Second))
	return sess, nil
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUser godoc
// @Summary Create an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body credentials true "Sign-up details"
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 409 {object} utils.Payload
// @Router /api/v1/auth/sign-up [post]
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var input credentials
	if !decode(w, r, &input) {
		return
	}

	user, err := h.Accounts.Register(r.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	ok(w, http.StatusCreated, "User registered successfully", user)
}

// LoginUser godoc
// @Summary Sign in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body credentials true "Credentials"
// @Success 200 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Router /api/v1/auth/login [post]
func (h *Handler) LoginUser(w http.ResponseWriter, r *http.Request) {
	var input credentials
	if !decode(w, r, &input) {
		return
	}

	user, err := h.Accounts.Authenticate(r.Context(), input.Email, input.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	sess, err := h.signIn(w, r, user)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	ok(w, http.StatusOK, "Login successful", meResponse{User: user, Role: sess.Role, IsSuperAdmin: sess.IsSuperAdmin()})
}

// POST /api/v1/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if err := h.Sessions.End(r.Context(), cookie.Value); err != nil {
			h.Log.Warn().Err(err).Msg("end session")
		}
	}

	// maxAge < 0 deletes the cookie
	h.setCookie(w, session.CookieName, "", -1)

	ok(w, http.StatusOK, "Logged out successfully", nil)
}

type passwordInput struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ChangePassword godoc
// @Summary Set a new password for the signed-in user
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body passwordInput true "New password and confirmation"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/auth/password [put]
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var input passwordInput
	if !decode(w, r, &input) {
		return
	}
	sess := currentSession(r)
	if err := h.Accounts.ChangePassword(r.Context(), sess.UserID, input.Password, input.ConfirmPassword); err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "Password updated", nil)
}

type meResponse struct {
	User         models.User `json:"user"`
	Role         models.Role `json:"role"`
	IsSuperAdmin bool        `json:"isSuperAdmin"`
}

// Me godoc
// @Summary Current user with effective role
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	user, err := h.Accounts.User(r.Context(), sess.UserID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "OK", meResponse{User: user, Role: sess.Role, IsSuperAdmin: sess.IsSuperAdmin()})
}

func (h *Handler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.Google == nil {
		fail(w, http.StatusServiceUnavailable, "Google sign-in is not configured")
		return
	}
	redirectType := r.URL.Query().Get("redirect") // "login" or "register"
	if redirectType != string(services.GoogleRegister) {
		redirectType = string(services.GoogleLogin)
	}

	state, err := GenerateState(map[string]string{"flow": redirectType})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.setCookie(w, oauthStateCookie, state, int((10 * time.Minute).Seconds()))

	http.Redirect(w, r, h.Google.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

func (h *Handler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.Google == nil {
		fail(w, http.StatusServiceUnavailable, "Google sign-in is not configured")
		return
	}
	state := r.FormValue("state")
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value != state {
		fail(w, http.StatusBadRequest, "Invalid OAuth state")
		return
	}
	h.setCookie(w, oauthStateCookie, "", -1)

	stateData, err := DecodeState(state)
	if err != nil {
		fail(w, http.StatusBadRequest, "Invalid OAuth state")
		return
	}
	flow := services.GoogleFlow(stateData["flow"])

	profile, err := h.Google.Profile(r.Context(), r.FormValue("code"))
	if err != nil {
		h.Log.Error().Err(err).Msg("google profile")
		fail(w, http.StatusBadGateway, "Google sign-in failed")
		return
	}

	user, err := h.Accounts.GoogleUser(r.Context(), flow, profile)
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		http.Redirect(w, r, h.FrontendURL+"/login?error=user_already_exists", http.StatusTemporaryRedirect)
		return
	case errors.Is(err, repositories.ErrNotFound):
		http.Redirect(w, r, h.FrontendURL+"/register?error=user_not_found", http.StatusTemporaryRedirect)
		return
	case err != nil:
		h.respondError(w, r, err)
		return
	}

	if _, err := h.signIn(w, r, user); err != nil {
		h.respondError(w, r, err)
		return
	}

	redirectURL := h.FrontendURL + "/dashboard?status=success_login"
	if flow == services.GoogleRegister {
		redirectURL = h.FrontendURL + "/onboarding?status=success_register"
	}
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}
