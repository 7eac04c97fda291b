package handlers

import (
	"net/http"

	"github.com/rohits-web03/safehands/internal/services"
)

// GetProfile godoc
// @Summary Executor, wait period and scrub settings
// @Tags Profile
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/profile [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.Profiles.Get(r.Context(), currentSession(r).UserID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "OK", p)
}

// UpdateProfile godoc
// @Summary Update executor, wait period or scrub settings
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body services.ProfileInput true "Fields to change"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/profile [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var input services.ProfileInput
	if !decode(w, r, &input) {
		return
	}
	p, err := h.Profiles.Update(r.Context(), currentSession(r).UserID, input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "Profile saved", p)
}

type socialInput struct {
	Intention string  `json:"intention"`
	Notes     *string `json:"notes"`
}

// ListSocialIntentions godoc
// @Summary Saved social intentions and the actions each platform supports
// @Tags Social
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/social-intentions [get]
func (h *Handler) ListSocialIntentions(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Social.List(r.Context(), currentSession(r).UserID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "OK", map[string]any{
		"intentions": rows,
		"platforms":  services.SocialOptions(),
	})
}

// SaveSocialIntention godoc
// @Summary Set the intention for one platform; an empty intention clears it
// @Tags Social
// @Accept json
// @Produce json
// @Param platform path string true "Platform"
// @Param body body socialInput true "Intention"
// @Success 200 {object} utils.Payload
// @Router /api/v1/social-intentions/{platform} [put]
func (h *Handler) SaveSocialIntention(w http.ResponseWriter, r *http.Request) {
	var input socialInput
	if !decode(w, r, &input) {
		return
	}
	row, err := h.Social.Save(r.Context(), currentSession(r).UserID, r.PathValue("platform"), input.Intention, input.Notes)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if row == nil {
		ok(w, http.StatusOK, "Intention cleared", nil)
		return
	}
	ok(w, http.StatusOK, "Intention saved", row)
}

func (h *Handler) DeleteSocialIntention(w http.ResponseWriter, r *http.Request) {
	if err := h.Social.Delete(r.Context(), currentSession(r).UserID, r.PathValue("platform")); err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "Intention cleared", nil)
}

// CompleteOnboarding godoc
// @Summary Guided setup: executor, wait period and a first asset
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body services.OnboardingInput true "Onboarding answers"
// @Success 200 {object} utils.Payload
// @Router /api/v1/onboarding [post]
func (h *Handler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	var input services.OnboardingInput
	if !decode(w, r, &input) {
		return
	}
	res, err := h.Onboarding.Complete(r.Context(), currentSession(r).UserID, input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "Your vault is set up!", res)
}
